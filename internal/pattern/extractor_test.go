package pattern

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			"ipv4",
			"connection from 192.168.10.42 refused",
			"connection from <IP> refused",
		},
		{
			"bracketed timestamp",
			"[2026-02-10 10:15:22] worker started",
			"<TIMESTAMP> worker started",
		},
		{
			"uuid",
			"request 550e8400-e29b-41d4-a716-446655440000 failed",
			"request <UUID> failed",
		},
		{
			"entry id token",
			"processed entry 9f86d081884c7d65 in 3ms",
			"processed entry <ID> in 3ms",
		},
		{
			"long numeric id",
			"order 1234567890 accepted",
			"order <NUM> accepted",
		},
		{
			"short numbers survive",
			"retry 3 of 5 after 200 ms",
			"retry 3 of 5 after 200 ms",
		},
		{
			"combined",
			"[2026-02-10T10:15:22Z] 10.0.0.1 entry 9f86d081884c7d65 order 9876543",
			"<TIMESTAMP> <IP> entry <ID> order <NUM>",
		},
		{
			"placeholders not rematched",
			"a1b2c3d4e5f6a1b2 and 127.0.0.1",
			"<ID> and <IP>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.message); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestTemplateEquivalence(t *testing.T) {
	same := [][2]string{
		{"user login from 10.0.0.1", "user login from 172.16.4.8"},
		{"done [2026-02-10 10:00:00]", "done [2026-02-11 23:59:59]"},
		{
			"job 550e8400-e29b-41d4-a716-446655440000 ok",
			"job 123e4567-e89b-12d3-a456-426614174000 ok",
		},
		{"entry deadbeefcafe1234 synced", "entry 0011223344556677 synced"},
		{"seq 100000 committed", "seq 999999999 committed"},
	}
	for _, pair := range same {
		if Normalize(pair[0]) != Normalize(pair[1]) {
			t.Errorf("expected same template for %q and %q, got %q vs %q",
				pair[0], pair[1], Normalize(pair[0]), Normalize(pair[1]))
		}
	}

	different := [][2]string{
		{"user login from 10.0.0.1", "user logout from 10.0.0.1"},
		{"seq 100000 committed", "seq 100000 aborted"},
	}
	for _, pair := range different {
		if Normalize(pair[0]) == Normalize(pair[1]) {
			t.Errorf("expected different templates for %q and %q", pair[0], pair[1])
		}
	}
}
