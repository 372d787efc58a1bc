package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"skullking/utils"

	"github.com/rs/zerolog/log"
)

// ErrInputClosed is returned by Human when its input ends before a valid
// answer was given.
var ErrInputClosed = errors.New("input closed")

// Random bids uniformly in [0, Round] and plays a uniformly chosen legal
// card. It is also the policy every player follows during rollouts.
type Random struct{}

func (Random) Bid(d Decision) (int, error) {
	return d.Game.Rand().IntN(d.Game.State.Round + 1), nil
}

func (Random) ChooseCard(d Decision, legal []int) (int, error) {
	return legal[d.Game.Rand().IntN(len(legal))], nil
}

// Human asks for every decision on a text prompt and keeps asking until the
// answer is legal.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

func (h *Human) Bid(d Decision) (int, error) {
	round := d.Game.State.Round
	fmt.Fprintf(h.out, "Player %d, your cards: %v\n", d.Player, d.Game.State.Hands[d.Player])
	for {
		bid, err := h.ask(fmt.Sprintf("Choose bid (in range 0-%d): ", round))
		if err != nil {
			return -1, err
		}
		if bid >= 0 && bid <= round {
			return bid, nil
		}
	}
}

func (h *Human) ChooseCard(d Decision, legal []int) (int, error) {
	s := d.Game.State
	fmt.Fprintf(h.out, "Trick so far: %v\n", s.TrickCards)
	for _, slot := range legal {
		fmt.Fprintf(h.out, "  [%d] %v\n", slot, s.Hands[d.Player][slot])
	}
	for {
		slot, err := h.ask(fmt.Sprintf("Choose card %v: ", legal))
		if err != nil {
			return -1, err
		}
		if utils.FindIndex(legal, slot) >= 0 {
			return slot, nil
		}
	}
}

// ask reads one integer answer; a malformed line yields -1 so the caller
// prompts again.
func (h *Human) ask(prompt string) (int, error) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return -1, fmt.Errorf("%w: %v", ErrInputClosed, err)
		}
		return -1, ErrInputClosed
	}
	line := strings.TrimSpace(h.in.Text())
	value, err := strconv.Atoi(line)
	if err != nil {
		log.Debug().Msgf("invalid choice: %q", line)
		return -1, nil
	}
	return value, nil
}
