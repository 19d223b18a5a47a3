package enum

// SaveState guards a document against concurrent saves
type SaveState int

const (
	SaveStateIdle SaveState = iota
	SaveStateSaving
)

func (s SaveState) String() string {
	return [...]string{"idle", "saving"}[s]
}
