package domain

// Tag is one entry of the autocomplete dictionary.
type Tag struct {
	Label string // Display text, underscores shown as spaces
	Value string // Canonical token used in API requests
	Count int64
}
