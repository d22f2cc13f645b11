package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
		ok   bool
	}{
		"plain":         {"alice@bookworm.test", "alice@bookworm.test", true},
		"normalized":    {"  Alice@BookWorm.Test ", "alice@bookworm.test", true},
		"missing at":    {"alice.bookworm.test", "alice.bookworm.test", false},
		"missing tld":   {"alice@bookworm", "alice@bookworm", false},
		"empty":         {"   ", "", false},
		"injection-ish": {"a@b.co' OR 1=1", "a@b.co' or 1=1", false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Email(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Email(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestID(t *testing.T) {
	good := []string{"gatsby-1925", "b_01", "64f1c2a9e4b0a1b2c3d4e5f6"}
	bad := []string{"", " ", "../etc", "a b", "<script>", string(make([]byte, 65))}
	for _, s := range good {
		if _, ok := ID(s); !ok {
			t.Errorf("ID(%q) rejected", s)
		}
	}
	for _, s := range bad {
		if _, ok := ID(s); ok {
			t.Errorf("ID(%q) accepted", s)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("Passw0rd!") {
		t.Fatal("strong password rejected")
	}
	for _, p := range []string{"short1!", "alllowercase1!", "ALLUPPER1!", "NoDigits!!", "NoSymbol11"} {
		if Password(p) {
			t.Errorf("Password(%q) accepted", p)
		}
	}
}

func TestQAndQty(t *testing.T) {
	if _, ok := Q("<script>"); ok {
		t.Fatal("markup accepted as query")
	}
	if q, ok := Q("  gatsby "); !ok || q != "gatsby" {
		t.Fatalf("Q trimmed badly: %q %v", q, ok)
	}
	if Qty(0) || Qty(MaxCartQty+1) || !Qty(1) || !Qty(MaxCartQty) {
		t.Fatal("Qty bounds wrong")
	}
}

func TestName(t *testing.T) {
	if n, ok := Name(" Ada "); !ok || n != "Ada" {
		t.Fatalf("Name trimmed badly: %q %v", n, ok)
	}
	if _, ok := Name(""); ok {
		t.Fatal("empty name accepted")
	}
}
