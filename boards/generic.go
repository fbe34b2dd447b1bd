// Package boards carries the provider-independent board pin descriptors.
//
// The Generic list fixes the canonical ordering of pin names that every board
// namespace follows. Providers implement whichever subset they have silicon
// (or simulation) for; absent names are simply skipped during namespace
// generation.
package boards

// Desc names one canonical board pin.
type Desc struct {
	Name string
}

// Generic is the canonical ordered pin list. Order here is the order pins
// appear in a generated board namespace, after the metadata entries.
var Generic = []Desc{
	{"D0"}, {"D1"}, {"D2"}, {"D3"}, {"D4"}, {"D5"}, {"D6"}, {"D7"},
	{"D8"}, {"D9"}, {"D10"}, {"D11"}, {"D12"}, {"D13"},
	{"A0"}, {"A1"}, {"A2"}, {"A3"}, {"A4"}, {"A5"},
	{"SDA"}, {"SCL"},
	{"SCK"}, {"MOSI"}, {"MISO"},
	{"TX"}, {"RX"},
	{"LED"},
}
