package tournament

import (
	"reflect"
	"testing"
)

func TestComputeStandingsOrdering(t *testing.T) {
	entries := []Entry{
		{PlayerName: "Ana", Points: 9, Wins: 3, Losses: 1},
		{PlayerName: "Ben", Points: 12, Wins: 4, Losses: 0},
		{PlayerName: "Carla", Points: 9, Wins: 2, Losses: 2},
		{PlayerName: "Dino", Points: 3, Wins: 1, Losses: 3},
	}

	got := ComputeStandings(entries)

	wantOrder := []string{"Ben", "Ana", "Carla", "Dino"}
	for i, name := range wantOrder {
		if got[i].PlayerName != name {
			t.Fatalf("position %d: got %s, want %s", i, got[i].PlayerName, name)
		}
	}
	for i, wantRank := range []int{1, 2, 3, 4} {
		if got[i].Rank != wantRank {
			t.Errorf("%s: rank = %d, want %d", got[i].PlayerName, got[i].Rank, wantRank)
		}
	}
}

func TestComputeStandingsSharedRank(t *testing.T) {
	entries := []Entry{
		{PlayerName: "Ana", Points: 6, Wins: 2},
		{PlayerName: "Ben", Points: 6, Wins: 2},
		{PlayerName: "Carla", Points: 3, Wins: 1},
	}

	got := ComputeStandings(entries)

	if got[0].Rank != 1 || got[1].Rank != 1 {
		t.Errorf("tied entries should share rank 1, got %d and %d", got[0].Rank, got[1].Rank)
	}
	if got[2].Rank != 3 {
		t.Errorf("Carla rank = %d, want 3", got[2].Rank)
	}
}

func TestComputeStandingsStableForTies(t *testing.T) {
	// Exact ties keep insertion order.
	entries := []Entry{
		{PlayerName: "First", Points: 5, Wins: 1},
		{PlayerName: "Second", Points: 5, Wins: 1},
	}

	got := ComputeStandings(entries)
	if got[0].PlayerName != "First" || got[1].PlayerName != "Second" {
		t.Errorf("tie order changed: %s, %s", got[0].PlayerName, got[1].PlayerName)
	}
}

func TestComputeStandingsDoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{PlayerName: "Low", Points: 1},
		{PlayerName: "High", Points: 10},
	}
	original := make([]Entry, len(entries))
	copy(original, entries)

	ComputeStandings(entries)

	if !reflect.DeepEqual(entries, original) {
		t.Error("input slice was reordered")
	}
}

func TestComputeStandingsEmpty(t *testing.T) {
	if got := ComputeStandings(nil); len(got) != 0 {
		t.Errorf("expected empty standings, got %d", len(got))
	}
}
