package player

// Character accumulates everything gathered during creation. Info and Attr
// are open maps so plugins can hang extra keys off them without a schema
// change; the remaining slices are reserved extension points.
type Character struct {
	Username string            `json:"username"`
	Info     map[string]string `json:"info"`
	Attr     map[string]int    `json:"attr"`
	Items    []string          `json:"items,omitempty"`
	Equips   []string          `json:"equips,omitempty"`
	Skills   []string          `json:"skills,omitempty"`
	History  []string          `json:"history,omitempty"`
}

func NewCharacter(username string) Character {
	return Character{
		Username: username,
		Info:     defaultInfo(),
		Attr:     defaultAttr(),
	}
}

func defaultInfo() map[string]string {
	return map[string]string{
		"name":        "",
		"race":        "",
		"personality": "",
		"description": "",
		"look":        "",
	}
}

func defaultAttr() map[string]int {
	return map[string]int{
		"hp":    10,
		"stam":  10,
		"mana":  10,
		"agi":   3,
		"str":   3,
		"magic": 3,
	}
}
