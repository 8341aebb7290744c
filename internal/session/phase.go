package session

// Phase is the top-level lifecycle stage of a connection. It only ever moves
// forward; a failed logon attempt retries inside PhaseLogon.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseLogon
	PhaseCharacterCreation
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseLogon:
		return "logon"
	case PhaseCharacterCreation:
		return "character-creation"
	case PhasePlay:
		return "play"
	default:
		return "unknown"
	}
}
