package identity

import "testing"

func TestEntityString(t *testing.T) {
	e := Entity{ServiceID: 0x1234, InstanceID: 0x1, EventID: 0x8005}
	want := "service 0x1234, instance 0x0001, event 0x8005"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEntityFields(t *testing.T) {
	e := Entity{ServiceID: 0x1234, InstanceID: 0x1, EventID: 0x8005}
	f := e.Fields()
	if f["service"] != "0x1234" || f["instance"] != "0x0001" || f["event"] != "0x8005" {
		t.Errorf("unexpected fields: %v", f)
	}
}
