package handler

import (
	"github.com/google/uuid"

	"sugoroku/internal/game/maze"
	"sugoroku/internal/game/sugoroku"
)

type playerJSON struct {
	Seat               int    `json:"seat"`
	Name               string `json:"name"`
	Character          string `json:"character"`
	Position           int    `json:"position"`
	TotalDistance      int    `json:"total_distance"`
	Die                string `json:"die"`
	IsInMaze           bool   `json:"is_in_maze"`
	IsInMontyHall      bool   `json:"is_in_monty_hall"`
	NeedsDiceSelection bool   `json:"needs_dice_selection"`
}

type stateJSON struct {
	GameID             uuid.UUID    `json:"game_id"`
	Players            []playerJSON `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	Round              int          `json:"round"`
	MaxTurns           int          `json:"max_turns"`
	BoardSize          int          `json:"board_size"`
	IsOver             bool         `json:"is_over"`
	Winner             int          `json:"winner"`
	WinnerName         string       `json:"winner_name,omitempty"`
	IsSlotEventActive  bool         `json:"is_slot_event_active"`
	SlotQueue          []int        `json:"slot_queue"`
}

func newStateJSON(s sugoroku.Snapshot) stateJSON {
	players := make([]playerJSON, len(s.Players))
	for i, p := range s.Players {
		players[i] = playerJSON{
			Seat:               p.Seat,
			Name:               p.Name,
			Character:          p.Character,
			Position:           p.Position,
			TotalDistance:      p.TotalDistance,
			Die:                p.Die,
			IsInMaze:           p.IsInMaze,
			IsInMontyHall:      p.IsInMontyHall,
			NeedsDiceSelection: p.NeedsDiceSelection,
		}
	}
	out := stateJSON{
		GameID:             s.ID,
		Players:            players,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Round:              s.Round,
		MaxTurns:           s.MaxTurns,
		BoardSize:          s.BoardSize,
		IsOver:             s.IsOver,
		Winner:             s.Winner,
		IsSlotEventActive:  s.IsSlotEventActive,
		SlotQueue:          s.SlotQueue,
	}
	if s.Winner >= 0 && s.Winner < len(players) {
		out.WinnerName = players[s.Winner].Name
	}
	if out.SlotQueue == nil {
		out.SlotQueue = []int{}
	}
	return out
}

type startRequest struct {
	NumPlayers   int      `json:"num_players"`
	Names        []string `json:"names"`
	Characters   []string `json:"characters"`
	MaxTurns     int      `json:"max_turns"`
	Layout       string   `json:"layout"`
	FinishAtGoal *bool    `json:"finish_at_goal"`
}

type startResponse struct {
	Message    string `json:"message"`
	NumPlayers int    `json:"num_players"`
	stateJSON
}

type rollResponse struct {
	Message  string        `json:"message"`
	Seat     int           `json:"seat"`
	Roll     int           `json:"roll"`
	Position int           `json:"position"`
	Event    sugoroku.Kind `json:"event,omitempty"`
	Blocked  bool          `json:"blocked"`
	stateJSON
}

type actionResponse struct {
	Message string `json:"message"`
	stateJSON
}

type diceResponse struct {
	Name          string          `json:"name"`
	Probabilities map[int]float64 `json:"probabilities"`
	Remaining     int             `json:"remaining,omitempty"`
}

type customDiceRequest struct {
	Probabilities map[string]float64 `json:"probabilities"`
}

type customDiceResponse struct {
	Message string `json:"message"`
	diceResponse
}

type eventPositionJSON struct {
	Position int           `json:"position"`
	Kind     sugoroku.Kind `json:"kind"`
	Name     string        `json:"name"`
}

type eventDescriptionJSON struct {
	Name        string        `json:"name"`
	Kind        sugoroku.Kind `json:"kind"`
	Description string        `json:"description"`
}

type diceOptionJSON struct {
	Index         int             `json:"index"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Mystery       bool            `json:"mystery"`
	Probabilities map[int]float64 `json:"probabilities,omitempty"`
}

type selectDiceRequest struct {
	DiceIndex *int `json:"dice_index"`
}

type montyHallRequest struct {
	Choice int     `json:"choice"`
	Change *string `json:"change"`
}

type montyHallResponse struct {
	Message    string `json:"message"`
	Phase      string `json:"phase"`
	OpenedDoor int    `json:"opened_door"`
	FinalDoor  int    `json:"final_door,omitempty"`
	PrizeDoor  int    `json:"prize_door,omitempty"`
	Won        *bool  `json:"won,omitempty"`
	stateJSON
}

type slotOptionJSON struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type spinRequest struct {
	SlotIndex *int `json:"slot_index"`
}

type spinResponse struct {
	Message string `json:"message"`
	Seat    int    `json:"seat"`
	Player  string `json:"player"`
	Reel    string `json:"reel"`
	Outcome string `json:"outcome"`
	Steps   int    `json:"steps"`
	Done    bool   `json:"done"`
	stateJSON
}

type mazeChoiceJSON struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

type mazeResponse struct {
	Message            string           `json:"message"`
	Player             string           `json:"player"`
	Node               string           `json:"node"`
	Path               []string         `json:"path"`
	SuccessProbability float64          `json:"success_probability"`
	Choices            []mazeChoiceJSON `json:"choices"`
}

func newMazeChoices(edges []maze.Edge) []mazeChoiceJSON {
	out := make([]mazeChoiceJSON, len(edges))
	for i, e := range edges {
		out[i] = mazeChoiceJSON{Index: i, Description: e.Description, Probability: e.Probability}
	}
	return out
}

type mazeRequest struct {
	ChoiceIndex *int `json:"choice_index"`
}
