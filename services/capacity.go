package services

import "github.com/m-kaif07/esport-tournament-website/models"

// TeamSizeForMode maps a game mode to the number of players per slot.
// Unknown modes fall back to Solo.
func TeamSizeForMode(mode models.GameMode) int {
	switch mode {
	case models.ModeDuo:
		return 2
	case models.ModeSquad:
		return 4
	default:
		return 1
	}
}

// DefaultSlotCount is the slot capacity a tournament gets for a given game
// and mode. PUBG lobbies hold 100 players, Free Fire (and everything else)
// 48, so the slot count is the lobby size divided by the team size.
func DefaultSlotCount(game string, mode models.GameMode) int {
	if game == models.GamePUBG {
		switch mode {
		case models.ModeDuo:
			return 50
		case models.ModeSquad:
			return 25
		default:
			return 100
		}
	}
	switch mode {
	case models.ModeDuo:
		return 24
	case models.ModeSquad:
		return 12
	default:
		return 48
	}
}

// PlayerCapacity is the total number of players a tournament can hold.
func PlayerCapacity(totalSlots, teamSize int) int {
	return totalSlots * teamSize
}

// SlotsFilled converts a filled-players count into whole slots, rounding up.
func SlotsFilled(filledPlayers, teamSize int) int {
	if teamSize <= 0 {
		return 0
	}
	return (filledPlayers + teamSize - 1) / teamSize
}
