package memory

import (
	"fmt"

	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
)

const (
	SeedWaiverWeek  = 1
	seedPoolPadding = 16
)

var seedTeams = []string{
	"Persija Jakarta", "Persib Bandung", "Persebaya Surabaya", "Bali United",
	"PSM Makassar", "Borneo FC", "Arema FC", "Dewa United",
}

var seedPositions = []string{"GK", "DEF", "DEF", "MID", "MID", "FWD"}

// SeedParticipants is the reference league's base order. The four divisions
// pick in rotation: A1, B1, C1, D1, A2, ...
func SeedParticipants() []string {
	out := make([]string, 0, 16)
	for seat := 1; seat <= 4; seat++ {
		for _, division := range []string{"A", "B", "C", "D"} {
			out = append(out, fmt.Sprintf("%s%d", division, seat))
		}
	}
	return out
}

// SeedPlayers returns enough players for a full 16x16 snake draft plus the
// week-1 waiver pool, which is already owned by the waiving participants.
func SeedPlayers() []roster.Player {
	named := []roster.Player{
		{ID: "pl-001", Name: "Andritany Ardhiyasa", Position: "GK", TeamName: "Persija Jakarta"},
		{ID: "pl-002", Name: "Teja Paku Alam", Position: "GK", TeamName: "Persib Bandung"},
		{ID: "pl-003", Name: "Hansamu Yama", Position: "DEF", TeamName: "Persija Jakarta"},
		{ID: "pl-004", Name: "Nick Kuipers", Position: "DEF", TeamName: "Persib Bandung"},
		{ID: "pl-005", Name: "Dusan Stevanovic", Position: "DEF", TeamName: "Persebaya Surabaya"},
		{ID: "pl-006", Name: "Ricky Fajrin", Position: "DEF", TeamName: "Bali United"},
		{ID: "pl-007", Name: "Maciej Gajos", Position: "MID", TeamName: "Persija Jakarta"},
		{ID: "pl-008", Name: "Marc Klok", Position: "MID", TeamName: "Persib Bandung"},
		{ID: "pl-009", Name: "Bruno Moreira", Position: "MID", TeamName: "Persebaya Surabaya"},
		{ID: "pl-010", Name: "Eber Bessa", Position: "MID", TeamName: "Bali United"},
		{ID: "pl-011", Name: "Gustavo Almeida", Position: "FWD", TeamName: "Persija Jakarta"},
		{ID: "pl-012", Name: "David da Silva", Position: "FWD", TeamName: "Persib Bandung"},
		{ID: "pl-013", Name: "Paulo Henrique", Position: "FWD", TeamName: "Persebaya Surabaya"},
		{ID: "pl-014", Name: "Mitsuru Maruoka", Position: "MID", TeamName: "Bali United"},
		{ID: "pl-015", Name: "Arief Catur", Position: "DEF", TeamName: "Persebaya Surabaya"},
		{ID: "pl-016", Name: "Dedi Kusnandar", Position: "MID", TeamName: "Persib Bandung"},
	}

	total := 16*16 + seedPoolPadding
	out := make([]roster.Player, 0, total+len(seedWaivers()))
	out = append(out, named...)
	for i := len(named) + 1; i <= total; i++ {
		out = append(out, roster.Player{
			ID:       fmt.Sprintf("pl-%03d", i),
			Name:     fmt.Sprintf("Squad Player %03d", i),
			Position: seedPositions[i%len(seedPositions)],
			TeamName: seedTeams[i%len(seedTeams)],
		})
	}

	for _, w := range seedWaivers() {
		out = append(out, roster.Player{
			ID:       w.PlayerID,
			Name:     w.PlayerName,
			Position: w.Position,
			TeamName: w.TeamName,
			OwnerID:  w.WaivedBy,
		})
	}

	return out
}

// SeedWaivers is the week-1 waiver pool. D3 waived two players, so it picks
// twice in the custom sequence.
func SeedWaivers() []waiver.WaivedPlayer {
	return seedWaivers()
}

func seedWaivers() []waiver.WaivedPlayer {
	return []waiver.WaivedPlayer{
		{Week: SeedWaiverWeek, PlayerID: "pl-w01", PlayerName: "Rizky Ridho", Position: "DEF", TeamName: "Persija Jakarta", WaivedBy: "D3", Priority: 1},
		{Week: SeedWaiverWeek, PlayerID: "pl-w02", PlayerName: "Witan Sulaeman", Position: "MID", TeamName: "Persija Jakarta", WaivedBy: "B2", Priority: 2},
		{Week: SeedWaiverWeek, PlayerID: "pl-w03", PlayerName: "Ramadhan Sananta", Position: "FWD", TeamName: "Borneo FC", WaivedBy: "D3", Priority: 3},
		{Week: SeedWaiverWeek, PlayerID: "pl-w04", PlayerName: "Egy Maulana Vikri", Position: "MID", TeamName: "Dewa United", WaivedBy: "A4", Priority: 4},
	}
}
