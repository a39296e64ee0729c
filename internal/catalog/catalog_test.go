package catalog

import "testing"

func TestDocumentTemplatesAreDeterministic(t *testing.T) {
	first := DocumentTemplates()
	second := DocumentTemplates()
	if len(first) != 20 {
		t.Fatalf("expected 20 templates, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("template %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
	seen := map[string]struct{}{}
	for _, tmpl := range first {
		if _, dup := seen[tmpl.ID]; dup {
			t.Fatalf("duplicate template id %s", tmpl.ID)
		}
		seen[tmpl.ID] = struct{}{}
		if tmpl.FieldsDetected < 8 || tmpl.FieldsDetected > 15 {
			t.Fatalf("fields detected out of range for %s: %d", tmpl.ID, tmpl.FieldsDetected)
		}
		if tmpl.Accuracy < 95.0 || tmpl.Accuracy > 99.9 {
			t.Fatalf("accuracy out of range for %s: %f", tmpl.ID, tmpl.Accuracy)
		}
		if tmpl.Status != TemplateStatusActive {
			t.Fatalf("expected active status for %s", tmpl.ID)
		}
	}
}

func TestDocumentTemplateByID(t *testing.T) {
	tmpl, ok := DocumentTemplateByID("template-a")
	if !ok {
		t.Fatalf("template-a missing")
	}
	if tmpl.LOB != "Traffic Enforcement" {
		t.Fatalf("unexpected lob: %s", tmpl.LOB)
	}
	if _, ok := DocumentTemplateByID("template-zz"); ok {
		t.Fatalf("expected lookup miss for unknown id")
	}
}

func TestStarterTemplates(t *testing.T) {
	starters := StarterTemplates()
	if len(starters) != 6 {
		t.Fatalf("expected 6 starter templates, got %d", len(starters))
	}
	blank, ok := StarterTemplateByID("start-from-scratch")
	if !ok || !blank.Blank {
		t.Fatalf("start-from-scratch should exist and be blank")
	}
	invoice, ok := StarterTemplateByID("basic-invoice")
	if !ok || invoice.Blank {
		t.Fatalf("basic-invoice should exist and not be blank")
	}
}

func TestDetectFieldsIsStable(t *testing.T) {
	fields := DetectFields()
	if len(fields) != 9 {
		t.Fatalf("expected 9 detected fields, got %d", len(fields))
	}
	for _, f := range fields {
		if !f.AutoDetected {
			t.Fatalf("field %s should be auto-detected", f.ID)
		}
		if f.Confidence < 0 || f.Confidence > 100 {
			t.Fatalf("confidence out of range for %s: %d", f.ID, f.Confidence)
		}
	}
	if fields[0].Name != "Ticket Number" {
		t.Fatalf("unexpected first field: %s", fields[0].Name)
	}
}
