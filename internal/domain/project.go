package domain

// Metadata holds the settings stored with a registered project. It is
// reserved and currently always empty.
type Metadata map[string]interface{}
