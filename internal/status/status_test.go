package status

import "testing"

func TestNormalizeVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"booked", Booked},
		{"Booked", Booked},
		{"  booked  ", Booked},
		{"in_transit", InTransit},
		{"in transit", InTransit},
		{"in-transit", InTransit},
		{"intransit", InTransit},
		{"In_Transit", InTransit},
		{"IN TRANSIT", InTransit},
		{" in-transit ", InTransit},
		{"active", InTransit},
		{"Active", InTransit},
		{"ACTIVE", InTransit},
		{"cancelled", Cancelled},
		{"canceled", Cancelled},
		{"Canceled", Cancelled},
		{"issues", Issues},
		{"issue", Issues},
		{"problem", Issues},
		{"Problems", Issues},
		{"delivered", Delivered},
		{"completed", Completed},
		{"", ""},
		{"   ", ""},
		{"pending review", "pendingreview"},
		{"Pending_Review", "pending_review"},
		{"garbage!!", "garbage!!"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Active", "in transit", "In-Transit", "canceled", "ISSUES",
		"booked", "delivered", "", "pending review", "weird value",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"in_transit", "In Transit"},
		{"in transit", "In Transit"},
		{"Active", "In Transit"},
		{"booked", "Booked"},
		{"delivered", "Delivered"},
		{"canceled", "Cancelled"},
		{"problem", "Issues"},
		{"", ""},
		{"pending_review", "Pending_review"},
	}

	for _, tc := range cases {
		if got := Label(tc.raw); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestClassifiers(t *testing.T) {
	if !IsInTransit("In Transit") {
		t.Error("IsInTransit should accept any in-transit spelling")
	}
	if !IsInTransit("Active") {
		t.Error("IsInTransit should accept the legacy active value")
	}
	if IsInTransit("booked") {
		t.Error("IsInTransit should reject booked")
	}

	if !IsActive("booked") || !IsActive("in_transit") {
		t.Error("booked and in_transit count as active")
	}
	if IsActive("delivered") || IsActive("cancelled") || IsActive("") {
		t.Error("delivered/cancelled/empty do not count as active")
	}
}

func TestOptionsCoverCanonicalSet(t *testing.T) {
	opts := Options()
	if len(opts) != len(Canonical) {
		t.Fatalf("got %d options, want %d", len(opts), len(Canonical))
	}
	for i, opt := range opts {
		if opt.Value != Canonical[i] {
			t.Errorf("option %d = %q, want %q", i, opt.Value, Canonical[i])
		}
		if !IsCanonical(opt.Value) {
			t.Errorf("option %q is not canonical", opt.Value)
		}
		if Normalize(opt.Value) != opt.Value {
			t.Errorf("canonical value %q is not a Normalize fixed point", opt.Value)
		}
	}
}
