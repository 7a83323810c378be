package handler

import (
	"fmt"
	"net/http"
	"strings"

	"sugoroku/internal/game/dice"
	"sugoroku/internal/game/montyhall"
	"sugoroku/internal/game/sugoroku"
	"sugoroku/internal/service"
)

// GameHandler serves the game endpoints.
type GameHandler struct {
	store *service.GameStore
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(store *service.GameStore) *GameHandler {
	return &GameHandler{store: store}
}

// StartGame handles POST /start_game.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	snap, err := h.store.Start(r.Context(), service.StartParams{
		PlayerCount:  req.NumPlayers,
		Names:        req.Names,
		Characters:   req.Characters,
		MaxTurns:     req.MaxTurns,
		Layout:       req.Layout,
		FinishAtGoal: req.FinishAtGoal,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, startResponse{
		Message:    "Game started.",
		NumPlayers: len(snap.Players),
		stateJSON:  newStateJSON(snap),
	})
}

// GetGameState handles GET /get_game_state.
func (h *GameHandler) GetGameState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.State(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, newStateJSON(snap))
}

// RollDice handles POST /roll_dice.
func (h *GameHandler) RollDice(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.Roll(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rollResponse{
		Message:   res.Turn.Message,
		Seat:      res.Turn.Seat,
		Roll:      res.Turn.Roll,
		Position:  res.Turn.Position,
		Event:     res.Turn.Event,
		Blocked:   res.Turn.Blocked,
		stateJSON: newStateJSON(res.State),
	})
}

// GetDiceProbabilities handles GET /get_dice_probabilities.
func (h *GameHandler) GetDiceProbabilities(w http.ResponseWriter, r *http.Request) {
	view, err := h.store.DiceDistribution(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, diceResponse{
		Name:          view.Name,
		Probabilities: view.Probabilities,
		Remaining:     view.Remaining,
	})
}

// GetEventPositions handles GET /get_event_positions.
func (h *GameHandler) GetEventPositions(w http.ResponseWriter, r *http.Request) {
	cells, err := h.store.EventLayout(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	out := make([]eventPositionJSON, len(cells))
	for i, c := range cells {
		out[i] = eventPositionJSON{Position: c.Position, Kind: c.Kind, Name: c.Name}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"event_positions": out})
}

// GetEventDescriptions handles GET /get_event_descriptions.
func (h *GameHandler) GetEventDescriptions(w http.ResponseWriter, r *http.Request) {
	descs, err := h.store.EventDescriptions(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	out := make([]eventDescriptionJSON, len(descs))
	for i, d := range descs {
		out[i] = eventDescriptionJSON{Name: d.Name, Kind: d.Kind, Description: d.Description}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"events": out})
}

// GetDiceOptions handles GET /get_dice_options.
func (h *GameHandler) GetDiceOptions(w http.ResponseWriter, r *http.Request) {
	opts := h.store.DiceOptions()
	out := make([]diceOptionJSON, len(opts))
	for i, o := range opts {
		out[i] = diceOptionJSON{
			Index:         o.Index,
			Name:          o.Name,
			Description:   o.Description,
			Mystery:       o.Mystery,
			Probabilities: o.Probabilities,
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"dice_options": out})
}

// SelectDice handles POST /select_dice.
func (h *GameHandler) SelectDice(w http.ResponseWriter, r *http.Request) {
	var req selectDiceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if req.DiceIndex == nil {
		WriteError(w, r, fmt.Errorf("%w: dice_index is required", ErrBadRequest))
		return
	}

	res, err := h.store.ChooseDice(r.Context(), *req.DiceIndex)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, actionResponse{Message: res.Message, stateJSON: newStateJSON(res.State)})
}

// SetCustomDice handles POST /set_custom_dice.
func (h *GameHandler) SetCustomDice(w http.ResponseWriter, r *http.Request) {
	var req customDiceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	weights, err := dice.ParseWeights(req.Probabilities)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	view, err := h.store.SetCustomDice(r.Context(), weights)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, customDiceResponse{
		Message:      "Custom dice set.",
		diceResponse: diceResponse{Name: view.Name, Probabilities: view.Probabilities},
	})
}

// MontyHallChoice handles POST /monty_hall_choice. The first call carries
// {"choice": door}; the second carries {"change": "yes"|"no"}.
func (h *GameHandler) MontyHallChoice(w http.ResponseWriter, r *http.Request) {
	var req montyHallRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	in := sugoroku.MontyHallInput{Door: req.Choice}
	if req.Change != nil {
		sw, err := parseYesNo(*req.Change)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		in.Switch = sw
	}

	res, err := h.store.MontyHallChoose(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	out := montyHallResponse{
		Message:    res.Message,
		Phase:      res.Phase.String(),
		OpenedDoor: res.OpenedDoor,
		stateJSON:  newStateJSON(res.State),
	}
	if res.Phase == montyhall.Resolved {
		won := res.Won
		out.Won = &won
		out.FinalDoor = res.FinalDoor
		out.PrizeDoor = res.PrizeDoor
	}
	WriteJSON(w, http.StatusOK, out)
}

// parseYesNo accepts English and Japanese answers.
func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "switch", "はい":
		return true, nil
	case "no", "n", "false", "stay", "いいえ", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: change must be yes or no, got %q", ErrBadRequest, s)
	}
}

// GetSlotOptions handles GET /get_slot_options.
func (h *GameHandler) GetSlotOptions(w http.ResponseWriter, r *http.Request) {
	opts := h.store.SlotOptions()
	out := make([]slotOptionJSON, len(opts))
	for i, o := range opts {
		out[i] = slotOptionJSON{Index: o.Index, Name: o.Name, Description: o.Description}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"slot_options": out})
}

// SpinSlot handles POST /spin_slot.
func (h *GameHandler) SpinSlot(w http.ResponseWriter, r *http.Request) {
	var req spinRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if req.SlotIndex == nil {
		WriteError(w, r, fmt.Errorf("%w: slot_index is required", ErrBadRequest))
		return
	}

	res, err := h.store.SlotSpin(r.Context(), *req.SlotIndex)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, spinResponse{
		Message:   res.Message,
		Seat:      res.Seat,
		Player:    res.Player,
		Reel:      res.Reel,
		Outcome:   res.Outcome.Name,
		Steps:     res.Outcome.Steps,
		Done:      res.Done,
		stateJSON: newStateJSON(res.State),
	})
}

// MazeProgress handles GET and POST /maze_progress. GET returns the current
// node and its choices; POST {"choice_index": n} follows one edge.
func (h *GameHandler) MazeProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.mazeChoose(w, r)
		return
	}

	view, err := h.store.MazeChoices(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, mazeResponse{
		Message:            fmt.Sprintf("%s is at the %s. Choose the next path.", view.Player, view.Node),
		Player:             view.Player,
		Node:               view.Node,
		Path:               view.Path,
		SuccessProbability: view.SuccessProbability,
		Choices:            newMazeChoices(view.Choices),
	})
}

func (h *GameHandler) mazeChoose(w http.ResponseWriter, r *http.Request) {
	var req mazeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if req.ChoiceIndex == nil {
		WriteError(w, r, fmt.Errorf("%w: choice_index is required", ErrBadRequest))
		return
	}

	res, err := h.store.MazeChoose(r.Context(), *req.ChoiceIndex)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, actionResponse{Message: res.Message, stateJSON: newStateJSON(res.State)})
}

// GetLayouts handles GET /get_layouts.
func (h *GameHandler) GetLayouts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"layouts": h.store.Layouts()})
}
