package room

import (
	"crypto/subtle"
	"strings"

	"highlow-server/pkg/highlow"
	"highlow-server/pkg/playable"
	"highlow-server/pkg/token"

	"github.com/sirupsen/logrus"
)

const seatTokenLength = 24

// NOTE: everything in this file must only be called from the run loop

func (d *Dealer) handle(c *Client, msg *playable.PayloadIn) {
	log := d.log.WithFields(logrus.Fields{
		"client": c.ID,
		"player": c.username,
		"action": msg.Action,
	})
	log.Debug("received command")

	var err error
	switch msg.Action {
	case "join":
		err = d.join(c, msg)
	case "rejoin":
		err = d.rejoin(c, msg)
	case "start":
		err = d.start(c, msg)
	case "rounds":
		err = d.setRounds(c, msg)
	case "nextRound":
		err = d.nextRound(c, msg)
	case "bet":
		err = d.placeBet(c, msg)
	case "replaceWild":
		err = d.replaceWild(c, msg)
	case "payout":
		err = d.requestPayout(c, msg)
	case "endGame":
		err = d.endGame(c, msg)
	case "leave":
		err = d.leave(c, msg)
	default:
		err = ErrUnknownAction
	}

	if err != nil {
		log.WithError(err).Warn("command rejected")
		c.Send(playable.NewError(msg.Context, err))
	}
}

func (d *Dealer) player(c *Client) (string, error) {
	if c.username == "" {
		return "", ErrNotJoined
	}

	return c.username, nil
}

func (d *Dealer) broadcastPlayers() {
	d.broadcast(playable.NewEvent("playersUpdated", d.game.State()))
}

func (d *Dealer) join(c *Client, msg *playable.PayloadIn) error {
	if c.username != "" {
		return ErrAlreadyJoined
	}

	username, _ := msg.AdditionalData.GetString("username")
	username = strings.TrimSpace(username)

	seatToken, err := token.Generate(seatTokenLength)
	if err != nil {
		return err
	}

	if err := d.game.AddPlayer(username); err != nil {
		reason, ok := joinRejectedReason(err)
		if !ok {
			return err
		}

		d.log.WithField("username", username).WithField("reason", reason).Info("join rejected")
		res := playable.NewEvent("joinRejected", joinedData{Username: username})
		res.Value = reason
		res.Context = msg.Context
		c.Send(res)
		return nil
	}

	c.username = username
	d.seats[username] = seatToken
	d.addLogMessages(playable.SimpleLogMessage(username, "%s joined the game", username))

	c.Send(playable.NewEvent("joinAccepted", joinedData{Username: username, Token: seatToken}).WithContext(msg.Context))
	d.broadcastPlayers()
	if d.game.CanStart() {
		d.broadcast(playable.NewEvent("gameStartable", nil))
	}

	return nil
}

// rejoin moves a seat to this connection
func (d *Dealer) rejoin(c *Client, msg *playable.PayloadIn) error {
	if c.username != "" {
		return ErrAlreadyJoined
	}

	username, _ := msg.AdditionalData.GetString("username")
	seatToken, _ := msg.AdditionalData.GetString("token")

	expected, ok := d.seats[username]
	if !ok || subtle.ConstantTimeCompare([]byte(seatToken), []byte(expected)) != 1 {
		return ErrInvalidToken
	}

	for _, client := range d.Clients() {
		if client.username == username {
			client.username = ""
		}
	}

	c.username = username
	c.Send(playable.NewEvent("joinAccepted", joinedData{Username: username, Token: expected}).WithContext(msg.Context))

	hand, err := d.game.Hand(username)
	if err != nil {
		return err
	}

	if len(hand) > 0 {
		c.Send(playable.NewEvent("handDealt", handDealtData{
			Username:   username,
			Hand:       hand,
			RoundsLeft: d.game.RoundsLeft(),
		}))
	}

	return nil
}

func (d *Dealer) start(c *Client, msg *playable.PayloadIn) error {
	if d.game.Started() {
		return highlow.ErrGameAlreadyStarted
	}

	if !d.game.CanStart() {
		return highlow.ErrNotEnoughPlayers
	}

	d.game.Start()
	d.addLogMessages(playable.SimpleLogMessage("", "the game has started"))

	c.Send(playable.OK(msg.Context))
	d.broadcast(playable.NewEvent("gameStarted", d.game.State()))

	return nil
}

func (d *Dealer) setRounds(c *Client, msg *playable.PayloadIn) error {
	if !d.game.Started() {
		return highlow.ErrGameNotStarted
	}

	n, ok := msg.AdditionalData.GetInt("numRounds")
	if !ok {
		if _, present := msg.AdditionalData["numRounds"]; present {
			return highlow.ErrInvalidRounds
		}

		n = d.options.DefaultRounds
	}

	if err := d.game.SetRounds(n); err != nil {
		return err
	}

	d.addLogMessages(playable.SimpleLogMessage("", "the game will last %d rounds", n))
	c.Send(playable.OK(msg.Context))
	d.broadcast(playable.NewEvent("roundsSet", roundsSetData{NumRounds: n}))

	if n == 0 {
		return nil
	}

	return d.dealNextRound()
}

func (d *Dealer) nextRound(c *Client, msg *playable.PayloadIn) error {
	if err := d.dealNextRound(); err != nil {
		return err
	}

	c.Send(playable.OK(msg.Context))
	return nil
}

// dealNextRound deals every player a new hand and sends it to that player only
func (d *Dealer) dealNextRound() error {
	hands, err := d.game.DealRound()
	if err != nil {
		return err
	}

	roundsLeft := d.game.RoundsLeft()
	for username, hand := range hands {
		d.sendToPlayer(username, playable.NewEvent("handDealt", handDealtData{
			Username:   username,
			Hand:       hand,
			RoundsLeft: roundsLeft,
		}))
	}

	round := d.game.RoundsTotal() - roundsLeft + 1
	d.addLogMessages(playable.SimpleLogMessage("", "dealt round %d of %d", round, d.game.RoundsTotal()))
	d.broadcastPlayers()

	return nil
}

func (d *Dealer) placeBet(c *Client, msg *playable.PayloadIn) error {
	username, err := d.player(c)
	if err != nil {
		return err
	}

	if err := d.game.BettingOpen(username); err != nil {
		return err
	}

	amount, ok := msg.AdditionalData.GetInt("amount")
	if !ok {
		return highlow.ErrInvalidBetAmount
	}

	rawDirection, _ := msg.AdditionalData.GetString("direction")
	direction, err := highlow.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	if err := d.game.PlaceBet(username, amount, direction); err != nil {
		return err
	}

	d.addLogMessages(playable.SimpleLogMessage(username, "%s bet %d %s", username, amount, direction))
	c.Send(playable.OK(msg.Context))
	d.broadcastPlayers()

	if d.game.AllBetsIn() {
		return d.settle()
	}

	return nil
}

func (d *Dealer) settle() error {
	result, err := d.game.SettleRound()
	if err != nil {
		return err
	}

	d.log.WithField("winners", result.Winners).WithField("roundsLeft", result.RoundsLeft).Info("round settled")
	d.addLogMessages(playable.SimpleLogMessage("", "round settled, winners: %s", strings.Join(result.Winners, ", ")))
	d.broadcast(playable.NewEvent("roundSettled", result))

	if result.RoundsLeft == 0 {
		d.addLogMessages(playable.SimpleLogMessage("", "game over"))
		d.broadcast(playable.NewEvent("gameOver", gameOverData{Scores: result.Scores}))
	}

	return nil
}

func (d *Dealer) replaceWild(c *Client, msg *playable.PayloadIn) error {
	username, err := d.player(c)
	if err != nil {
		return err
	}

	oldLabel, _ := msg.AdditionalData.GetString("old")
	descriptor, _ := msg.AdditionalData.GetString("new")

	hand, err := d.game.ReplaceWild(username, oldLabel, descriptor)
	if err != nil {
		return err
	}

	c.Send(playable.NewEvent("wildReplaced", handDealtData{
		Username:   username,
		Hand:       hand,
		RoundsLeft: d.game.RoundsLeft(),
	}).WithContext(msg.Context))

	return nil
}

func (d *Dealer) requestPayout(c *Client, msg *playable.PayloadIn) error {
	settlement, err := d.game.DistributeMoney()
	if err != nil {
		return err
	}

	c.Send(playable.OK(msg.Context))
	d.broadcast(playable.NewEvent("payoutComputed", newPayoutData(settlement)))

	return nil
}

func (d *Dealer) endGame(c *Client, msg *playable.PayloadIn) error {
	d.game.Reset()
	d.seats = make(map[string]string)
	for _, client := range d.Clients() {
		client.username = ""
	}

	d.addLogMessages(playable.SimpleLogMessage("", "the game has ended"))
	c.Send(playable.OK(msg.Context))
	d.broadcast(playable.NewEvent("gameEnded", nil))

	return nil
}

func (d *Dealer) leave(c *Client, msg *playable.PayloadIn) error {
	username, err := d.player(c)
	if err != nil {
		return err
	}

	if err := d.game.RemovePlayer(username); err != nil {
		return err
	}
	delete(d.seats, username)

	for _, client := range d.Clients() {
		if client.username == username {
			client.username = ""
		}
	}

	d.addLogMessages(playable.SimpleLogMessage(username, "%s left the game", username))
	c.Send(playable.NewEvent("leftGame", joinedData{Username: username}).WithContext(msg.Context))
	d.broadcastPlayers()

	// the player who left may have been the only one still to bet
	if d.game.Started() && len(d.game.Usernames()) > 0 && d.game.RoundsLeft() > 0 && d.game.AllBetsIn() {
		return d.settle()
	}

	return nil
}
