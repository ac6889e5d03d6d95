package model

import "fmt"

// GameState is a phase of the game lifecycle
type GameState string

const (
	GameStateBoot      GameState = "boot"
	GameStateMenu      GameState = "menu"
	GameStatePrepare   GameState = "prepare"
	GameStatePlaying   GameState = "playing"
	GameStatePaused    GameState = "paused"
	GameStateCompleted GameState = "completed"
	GameStateFailed    GameState = "failed"
)

// ParseGameState converts a name into a GameState
func ParseGameState(s string) (GameState, error) {
	switch st := GameState(s); st {
	case GameStateBoot, GameStateMenu, GameStatePrepare, GameStatePlaying,
		GameStatePaused, GameStateCompleted, GameStateFailed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
}
