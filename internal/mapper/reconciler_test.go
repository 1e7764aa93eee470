package mapper

import (
	"testing"

	"consolidator/internal/model"
)

func TestReconciler_Deterministic(t *testing.T) {
	t.Parallel()

	headers := []string{"First Name", "Email", "fname", "E-mail", "Name", "email_address", "totally_unknown_zz"}
	r := NewReconciler()

	first := r.Reconcile(headers)
	second := r.Reconcile(headers)
	if len(first) != len(second) {
		t.Fatalf("size mismatch: %d vs %d", len(first), len(second))
	}
	for raw, target := range first {
		if second[raw] != target {
			t.Fatalf("%q: %q vs %q", raw, target, second[raw])
		}
	}
}

func TestReconciler_PoolsVariantsOntoCanonical(t *testing.T) {
	t.Parallel()

	r := NewReconciler()
	mapping := r.Reconcile([]string{"First Name", "fname", "Name", "Email", "E-mail", "email_address"})

	for _, raw := range []string{"First Name", "fname", "Name"} {
		if mapping[raw] != "first_name" {
			t.Fatalf("%q: want=first_name got=%q", raw, mapping[raw])
		}
	}
	for _, raw := range []string{"Email", "E-mail", "email_address"} {
		if mapping[raw] != "email" {
			t.Fatalf("%q: want=email got=%q", raw, mapping[raw])
		}
	}
}

func TestReconciler_UnmatchedIsUnmapped(t *testing.T) {
	t.Parallel()

	r := NewReconciler()
	mapping := r.Reconcile([]string{"qqqq_zzzz_7731"})
	if target, ok := mapping.Target("qqqq_zzzz_7731"); ok {
		t.Fatalf("want unmapped, got %q", target)
	}
}

func TestReconciler_OverrideWins(t *testing.T) {
	t.Parallel()

	r := NewReconciler()
	r.Override("Emp Email", "email")

	mapping := r.Reconcile([]string{"Emp Email"})
	if mapping["Emp Email"] != "email" {
		t.Fatalf("override ignored: got %q", mapping["Emp Email"])
	}

	// 覆盖规则对规范化等价的写法同样生效
	mapping = r.Reconcile([]string{"emp_email"})
	if mapping["emp_email"] != "email" {
		t.Fatalf("normalized override ignored: got %q", mapping["emp_email"])
	}
}

func TestReconciler_OverrideLastWriteWins(t *testing.T) {
	t.Parallel()

	r := NewReconciler()
	r.Override("Contact", "full_name")
	r.Override("Contact", "email")

	mapping := r.Reconcile([]string{"Contact"})
	if mapping["Contact"] != "email" {
		t.Fatalf("want last write, got %q", mapping["Contact"])
	}
}

func TestReconciler_Entries(t *testing.T) {
	t.Parallel()

	r := NewReconciler()
	entries := r.Entries([]string{"Email", "zzzz_9999"})
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if !entries[0].Mapped || entries[0].Canonical != "email" {
		t.Fatalf("Email entry: %+v", entries[0])
	}
	if entries[1].Mapped || entries[1].Canonical != model.Unmapped {
		t.Fatalf("unknown entry: %+v", entries[1])
	}
}
