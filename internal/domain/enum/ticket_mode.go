package enum

import "encoding/json"

// TicketMode tells the backend whether a saved ticket closes the sale
type TicketMode int

const (
	TicketModeFinalized TicketMode = 0
	TicketModeSuspended TicketMode = 1
)

func (m TicketMode) String() string {
	return [...]string{"Finalized", "Suspended"}[m]
}

func (m TicketMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

func (m *TicketMode) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "Suspended" {
			*m = TicketModeSuspended
		} else {
			*m = TicketModeFinalized
		}
		return nil
	}
	*m = TicketMode(i)
	return nil
}
