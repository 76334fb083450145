package rules

// DefaultTable is the name of the table used when none is configured.
const DefaultTable = "9elements"

func init() {
	Register(NineElements())
}
