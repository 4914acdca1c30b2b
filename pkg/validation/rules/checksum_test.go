package rules

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"111.444.777-35", "11144477735"},
		{"11.222.333/0001-81", "11222333000181"},
		{"12345", "12345"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := digits(tt.in); got != tt.want {
			t.Errorf("digits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want bool
	}{
		{"valid", "52998224725", true},
		{"valid with distinct digits", "11144477735", true},
		{"bad check digits", "52998224726", false},
		{"sequential", "12345678901", false},
		{"all same digits pass the checksum but are rejected", "11111111111", false},
		{"too short", "5299822472", false},
		{"too long", "529982247255", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validCPF(tt.cpf); got != tt.want {
				t.Errorf("validCPF(%q) = %t, want %t", tt.cpf, got, tt.want)
			}
		})
	}
}

func TestValidCNPJ(t *testing.T) {
	tests := []struct {
		name string
		cnpj string
		want bool
	}{
		{"valid", "11222333000181", true},
		{"bad check digits", "11222333000182", false},
		{"all same digits", "11111111111111", false},
		{"too short", "1122233300018", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validCNPJ(tt.cnpj); got != tt.want {
				t.Errorf("validCNPJ(%q) = %t, want %t", tt.cnpj, got, tt.want)
			}
		})
	}
}

func TestValidCNS(t *testing.T) {
	tests := []struct {
		name string
		cns  string
		want bool
	}{
		{"definitive starting 1", "100000000000007", true},
		{"definitive with wrong tail", "100000000000008", false},
		{"provisional starting 7", "700000000000005", true},
		{"provisional with bad weighted sum", "700000000000004", false},
		{"invalid leading digit", "300000000000000", false},
		{"non numeric", "70000000000000a", false},
		{"too short", "7000000000005", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validCNS(tt.cns); got != tt.want {
				t.Errorf("validCNS(%q) = %t, want %t", tt.cns, got, tt.want)
			}
		})
	}
}
