package deck

// DealHands deals round-robin from d: one card per player per round, in
// playerIDs order, for perHand rounds. Dealing stops for everyone as soon as
// the deck runs dry, so on a short deck players earlier in the order end up
// with one card more than those after them.
//
// Every player id receives a hand, possibly empty.
func DealHands(playerIDs []string, perHand int, d *Deck) map[string]Hand {
	hands := make(map[string]Hand, len(playerIDs))
	for _, id := range playerIDs {
		hands[id] = Hand{}
	}

	for r := 0; r < perHand; r++ {
		for _, id := range playerIDs {
			text, ok := d.Deal()
			if !ok {
				return hands
			}
			hands[id] = append(hands[id], Card{Text: text})
		}
	}
	return hands
}
