package fixture

import (
	"testing"
)

func TestBuildTeamStates(t *testing.T) {
	tests := []struct {
		name     string
		fixtures []Fixture
		want     map[int64]bool
	}{
		{
			name:     "empty round",
			fixtures: nil,
			want:     map[int64]bool{},
		},
		{
			name: "single fixtures",
			fixtures: []Fixture{
				{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Finished: true},
				{ID: 2, HomeTeamID: 3, AwayTeamID: 4, Finished: false},
			},
			want: map[int64]bool{1: true, 2: true, 3: false, 4: false},
		},
		{
			name: "double round second leg pending",
			fixtures: []Fixture{
				{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Finished: true},
				{ID: 2, HomeTeamID: 3, AwayTeamID: 1, Finished: false},
			},
			want: map[int64]bool{1: false, 2: true, 3: false},
		},
		{
			name: "double round first leg pending",
			fixtures: []Fixture{
				{ID: 2, HomeTeamID: 3, AwayTeamID: 1, Finished: false},
				{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Finished: true},
			},
			want: map[int64]bool{1: false, 2: true, 3: false},
		},
		{
			name: "double round both legs finished",
			fixtures: []Fixture{
				{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Finished: true},
				{ID: 2, HomeTeamID: 1, AwayTeamID: 3, Finished: true},
			},
			want: map[int64]bool{1: true, 2: true, 3: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTeamStates(tt.fixtures)
			if got.Len() != len(tt.want) {
				t.Fatalf("unexpected team count: got=%d want=%d", got.Len(), len(tt.want))
			}
			for teamID, want := range tt.want {
				if got.Finished(teamID) != want {
					t.Fatalf("team %d: got finished=%t want=%t", teamID, got.Finished(teamID), want)
				}
			}
		})
	}
}

func TestTeamStates_UnknownTeamIsNotFinished(t *testing.T) {
	states := BuildTeamStates([]Fixture{{HomeTeamID: 1, AwayTeamID: 2, Finished: true}})
	if states.Finished(99) {
		t.Fatalf("expected unmapped team to be not finished")
	}

	var zero TeamStates
	if zero.Finished(1) {
		t.Fatalf("expected zero value to report not finished")
	}
}

func TestTeamStates_TeamsReturnsCopy(t *testing.T) {
	states := BuildTeamStates([]Fixture{{HomeTeamID: 1, AwayTeamID: 2, Finished: true}})
	teams := states.Teams()
	teams[1] = false
	if !states.Finished(1) {
		t.Fatalf("mutating Teams() result must not change the states")
	}
}

func TestStatusFromFlags(t *testing.T) {
	if got := StatusFromFlags(nil, false, false); got != StatusPostponed {
		t.Fatalf("expected postponed, got %s", got)
	}
	if !IsFinishedStatus(StatusFromFlags(nil, true, true)) {
		t.Fatalf("expected finished status")
	}
}

func TestAllFinished(t *testing.T) {
	if AllFinished(nil) {
		t.Fatalf("empty round must not be finished")
	}
	items := []Fixture{{Finished: true}, {Finished: false}}
	if AllFinished(items) {
		t.Fatalf("expected not finished")
	}
	items[1].Finished = true
	if !AllFinished(items) {
		t.Fatalf("expected finished")
	}
}
