package interact

// Mode selects which formation the particles morph toward.
type Mode int

const (
	ModeLogo Mode = iota
	ModePrimaryText
	ModeSecondaryText

	ModeCount = 3
)

func (m Mode) Next() Mode { return (m + 1) % ModeCount }

func (m Mode) String() string {
	switch m {
	case ModeLogo:
		return "logo"
	case ModePrimaryText:
		return "text1"
	case ModeSecondaryText:
		return "text2"
	}
	return "unknown"
}
