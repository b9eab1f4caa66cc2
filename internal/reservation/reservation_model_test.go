package reservation

import (
	"encoding/json"
	"testing"
)

func TestPlayerListUnmarshalTaggedForm(t *testing.T) {
	raw := `[{"name":"Roel","user_id":7,"is_member":true,"is_guest":false},{"name":"Visitor","is_member":false,"is_guest":true}]`

	var players PlayerList
	if err := json.Unmarshal([]byte(raw), &players); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(players) != 2 {
		t.Fatalf("len = %d, want 2", len(players))
	}
	if players[0].UserID == nil || *players[0].UserID != 7 {
		t.Errorf("player 0 user_id = %v, want 7", players[0].UserID)
	}
	if !players[1].IsGuest {
		t.Error("player 1 should be a guest")
	}
}

func TestPlayerListMigratesLegacyStringArray(t *testing.T) {
	// Rows written before players carried membership flags stored a bare
	// array of names.
	raw := `["Ana","Ben"]`

	var players PlayerList
	if err := json.Unmarshal([]byte(raw), &players); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(players) != 2 {
		t.Fatalf("len = %d, want 2", len(players))
	}
	for i, p := range players {
		if !p.IsMember || p.IsGuest {
			t.Errorf("player %d: legacy names should become members, got %+v", i, p)
		}
		if p.UserID != nil {
			t.Errorf("player %d: legacy names have no linked user", i)
		}
	}
	if players[0].Name != "Ana" || players[1].Name != "Ben" {
		t.Errorf("names = %q, %q", players[0].Name, players[1].Name)
	}
}

func TestPlayerListMixedLegacyAndTagged(t *testing.T) {
	raw := `["Ana",{"name":"Visitor","is_guest":true}]`

	var players PlayerList
	if err := json.Unmarshal([]byte(raw), &players); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !players[0].IsMember {
		t.Error("legacy element should be a member")
	}
	if !players[1].IsGuest {
		t.Error("tagged element should keep its guest flag")
	}
}

func TestPlayerListScanRejectsGarbage(t *testing.T) {
	var players PlayerList
	if err := players.Scan([]byte(`[42]`)); err == nil {
		t.Error("expected error for numeric element")
	}
	if err := players.Scan(17); err == nil {
		t.Error("expected error for non-byte source")
	}
}

func TestPlayerListValueNilIsEmptyArray(t *testing.T) {
	var players PlayerList
	v, err := players.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil list marshals to %s, want []", v)
	}
}

func TestMembersAndGuestCount(t *testing.T) {
	uid := uint(3)
	players := PlayerList{
		{Name: "Roel", UserID: &uid, IsMember: true},
		{Name: "Ana", IsMember: true},
		{Name: "Visitor", IsGuest: true},
		{Name: "Walk-in", IsGuest: true},
	}

	if got := len(players.Members()); got != 2 {
		t.Errorf("members = %d, want 2", got)
	}
	if got := players.GuestCount(); got != 2 {
		t.Errorf("guests = %d, want 2", got)
	}
}
