package entity

// Operator is the cashier logged in at a terminal
type Operator struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// TerminalContext is what the backend tells us about the terminal at login.
// It is passed explicitly to every session operation.
type TerminalContext struct {
	TerminalID        string   `json:"terminal_id"`
	TerminalName      string   `json:"terminal_name"`
	Company           string   `json:"company"`
	Address           string   `json:"address,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Email             string   `json:"email,omitempty"`
	DefaultCustomerID string   `json:"default_customer_id,omitempty"`
	BackendToken      string   `json:"-"`
	Operator          Operator `json:"operator"`
}

// LoginResult is the data section of the backend login response
type LoginResult struct {
	Token    string          `json:"token"`
	Operator Operator        `json:"operator"`
	Terminal TerminalContext `json:"terminal"`
}
