package game

// Player is a participant in a game. Ordinal is 1-based and fixes turn
// order for the lifetime of the game.
type Player struct {
	Ordinal     int      `json:"ordinal"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Cards       []string `json:"cards"`
}

func (p *Player) copy() *Player {
	cards := make([]string, len(p.Cards))
	copy(cards, p.Cards)
	return &Player{
		Ordinal:     p.Ordinal,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Cards:       cards,
	}
}

// removeCard drops the first occurrence of card from the player's hand.
func (p *Player) removeCard(card string) {
	for i, held := range p.Cards {
		if held == card {
			p.Cards = append(p.Cards[:i], p.Cards[i+1:]...)
			return
		}
	}
}
