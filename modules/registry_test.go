package modules

import "testing"

func TestDescriptorID(t *testing.T) {
	cases := map[string]string{
		"endpoint/single-endpoint":  "endpoint-single-endpoint",
		"clients/graphiql":          "clients-graphiql",
		"schema/nested-mutations":   "schema-nested-mutations",
		"performance/cache-control": "performance-cache-control",
	}
	for key, expected := range cases {
		d := &Descriptor{Key: key}
		if got := d.ID(); got != expected {
			t.Errorf("Descriptor{Key: %q}.ID() = %q, expected %q", key, got, expected)
		}
	}
}

func TestRegistry_ResolveID(t *testing.T) {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		t.Fatalf("expected defaults to register, got %v", err)
	}

	d, err := r.ResolveID("clients-graphiql")
	if err != nil {
		t.Fatalf("expected ID to resolve, got %v", err)
	}
	if d.Key != "clients/graphiql" {
		t.Fatalf("resolved wrong module: %s", d.Key)
	}

	if _, err := r.ResolveID("does-not-exist"); err == nil {
		t.Fatal("expected unknown ID to fail resolution")
	} else if !IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	d := &Descriptor{Key: "schema/public-introspection"}
	if err := r.Register(d); err != nil {
		t.Fatalf("expected first registration to succeed, got %v", err)
	}
	if err := r.Register(d); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestDescriptor_EditableSettings(t *testing.T) {
	d := &Descriptor{
		Key: "clients/graphiql",
		Settings: []SettingDefinition{
			{Input: "clientPath", Name: "Client path", Type: SettingTypePath},
			{Name: "Keyboard shortcuts"},
		},
	}

	editable := d.EditableSettings()
	if len(editable) != 1 {
		t.Fatalf("expected 1 editable setting, got %d", len(editable))
	}
	if editable[0].Input != "clientPath" {
		t.Fatalf("expected clientPath, got %q", editable[0].Input)
	}

	if _, ok := d.Setting("clientPath"); !ok {
		t.Fatal("expected clientPath to be resolvable")
	}
	if _, ok := d.Setting(""); ok {
		t.Fatal("informational entries must not resolve by empty input")
	}
}

func TestRegistry_ListOrdered(t *testing.T) {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		t.Fatalf("expected defaults to register, got %v", err)
	}
	list := r.List()
	if len(list) != r.Len() {
		t.Fatalf("List returned %d modules, Len reports %d", len(list), r.Len())
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Key >= list[i].Key {
			t.Fatalf("expected modules ordered by key, got %s before %s", list[i-1].Key, list[i].Key)
		}
	}
}
