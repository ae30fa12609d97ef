package domain

import "testing"

// FuzzParseAccountID checks the trust-boundary parser never panics and that
// accepted input round-trips unchanged.
func FuzzParseAccountID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		parsed, err := ParseAccountID(input)
		if err != nil {
			return
		}
		if parsed.IsNil() {
			t.Error("nil UUID was accepted")
		}
		roundTrip, err := ParseAccountID(parsed.String())
		if err != nil {
			t.Errorf("accepted id failed round-trip: %v", err)
		}
		if roundTrip != parsed {
			t.Error("round-trip changed the id")
		}
	})
}
