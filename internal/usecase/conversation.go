package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"
	"github.com/KlimZavadski/granica-bot/pkg/logger"
	"github.com/KlimZavadski/granica-bot/pkg/metrics"
	"github.com/KlimZavadski/granica-bot/pkg/timeutil"
)

// ErrDuplicateActiveJourney indicates an attempt to start a second journey
// while one is still open
var ErrDuplicateActiveJourney = errors.New("user already has an active journey")

// Button callback identifiers
const (
	cbCarrierPrefix  = "carrier:"
	cbTimezonePrefix = "tz:"
	cbNow            = "now"
	cbChangeTimezone = "change_tz"
	cbCancelYes      = "cancel_yes"
	cbCancelNo       = "cancel_no"
)

const welcomeText = "Welcome to Granica Bot!\n\n" +
	"This bot tracks how long it takes to cross the border between Belarus and Poland/Lithuania.\n\n" +
	"How it works:\n" +
	"1. Choose your carrier\n" +
	"2. Enter the departure date and time\n" +
	"3. Mark checkpoints as you pass them\n" +
	"4. Review the stats and help others plan their trips\n\n" +
	"All times are stored in UTC.\n\n" +
	"Use /new to start tracking a journey\n" +
	"Use /stats to see the latest border data\n" +
	"Use /cancel to cancel the current journey"

const thankYouText = "Thank you for contributing!\n\n" +
	"Your data helps others plan their trips.\n\n" +
	"Use /new to track your next journey\n" +
	"Use /stats to see the statistics"

const genericFailureText = "Something went wrong, please try again."

// Conversation drives the journey tracking dialogue. It owns the per-user
// session lifecycle and collects exactly one timestamp per mandatory
// checkpoint, in order, delegating each to the sequence validator before
// persisting.
type Conversation struct {
	carrierRepo    repository.CarrierRepository
	checkpointRepo repository.CheckpointRepository
	journeyRepo    repository.JourneyRepository
	eventRepo      repository.JourneyEventRepository
	sessionRepo    repository.SessionRepository
	metrics        *metrics.Metrics
	logger         logger.Logger

	maxGap     time.Duration
	defaultTZ  string
	statsLimit int

	now func() time.Time
}

// NewConversation creates a new conversation engine
func NewConversation(
	carrierRepo repository.CarrierRepository,
	checkpointRepo repository.CheckpointRepository,
	journeyRepo repository.JourneyRepository,
	eventRepo repository.JourneyEventRepository,
	sessionRepo repository.SessionRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	maxGap time.Duration,
	defaultTZ string,
	statsLimit int,
) *Conversation {
	if maxGap <= 0 {
		maxGap = timeutil.DefaultMaxCheckpointGap
	}
	return &Conversation{
		carrierRepo:    carrierRepo,
		checkpointRepo: checkpointRepo,
		journeyRepo:    journeyRepo,
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		metrics:        metrics,
		logger:         logger,
		maxGap:         maxGap,
		defaultTZ:      defaultTZ,
		statsLimit:     statsLimit,
		now:            timeutil.NowUTC,
	}
}

// OnCommand handles a slash command from the user
func (c *Conversation) OnCommand(ctx context.Context, userID int64, command string) ([]entity.Reply, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(command)), "/") {
	case "start":
		return []entity.Reply{entity.NewReply(welcomeText)}, nil
	case "new":
		return c.startNewJourney(ctx, userID)
	case "cancel":
		return c.requestCancel(ctx, userID)
	case "stats":
		return c.showStats(ctx)
	case "timezone":
		return c.requestTimezoneChange(ctx, userID)
	default:
		return []entity.Reply{entity.NewReply("Unknown command. Use /new, /stats or /cancel.")}, nil
	}
}

// OnText handles free-form text input from the user
func (c *Conversation) OnText(ctx context.Context, userID int64, text string) ([]entity.Reply, error) {
	session, err := c.sessionRepo.Get(ctx, userID)
	if err != nil {
		return c.failure(err)
	}
	if session == nil {
		return []entity.Reply{entity.NewReply("Use /new to start tracking a journey.")}, nil
	}

	text = strings.TrimSpace(text)

	switch session.State {
	case entity.StateChoosingCarrier:
		return c.chooseCarrierByName(ctx, session, text)
	case entity.StateEnteringDepartureDate:
		return c.enterDepartureDate(ctx, session, text)
	case entity.StateEnteringDepartureTime:
		return c.enterDepartureTime(ctx, session, text)
	case entity.StateChoosingTimezone:
		return c.chooseInitialTimezone(ctx, session, text)
	case entity.StateChangingTimezone:
		return c.changeTimezone(ctx, session, text)
	case entity.StateConfirmingCancel:
		switch strings.ToLower(text) {
		case "yes":
			return c.confirmCancel(ctx, session)
		case "no":
			return c.resumeAfterCancelPrompt(ctx, session)
		}
		return []entity.Reply{c.cancelPrompt(ctx, session)}, nil
	}

	if index, ok := checkpointStateIndex(session.State); ok {
		return c.recordCheckpoint(ctx, session, index, text)
	}

	return []entity.Reply{entity.NewReply("Use /new to start tracking a journey.")}, nil
}

// OnButton handles an inline button press
func (c *Conversation) OnButton(ctx context.Context, userID int64, callbackID string) ([]entity.Reply, error) {
	session, err := c.sessionRepo.Get(ctx, userID)
	if err != nil {
		return c.failure(err)
	}
	if session == nil {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(callbackID, cbCarrierPrefix):
		if session.State != entity.StateChoosingCarrier {
			// Stale button from an earlier message, ignore
			return nil, nil
		}
		return c.chooseCarrierByID(ctx, session, strings.TrimPrefix(callbackID, cbCarrierPrefix))

	case strings.HasPrefix(callbackID, cbTimezonePrefix):
		tz := strings.TrimPrefix(callbackID, cbTimezonePrefix)
		switch session.State {
		case entity.StateChoosingTimezone:
			return c.chooseInitialTimezone(ctx, session, tz)
		case entity.StateChangingTimezone:
			return c.changeTimezone(ctx, session, tz)
		}
		return nil, nil

	case callbackID == cbNow:
		if index, ok := checkpointStateIndex(session.State); ok {
			return c.recordCheckpoint(ctx, session, index, cbNow)
		}
		return nil, nil

	case callbackID == cbChangeTimezone:
		return c.beginTimezoneChange(ctx, session)

	case callbackID == cbCancelYes:
		if session.State != entity.StateConfirmingCancel {
			return nil, nil
		}
		return c.confirmCancel(ctx, session)

	case callbackID == cbCancelNo:
		if session.State != entity.StateConfirmingCancel {
			return nil, nil
		}
		return c.resumeAfterCancelPrompt(ctx, session)
	}

	return nil, nil
}

// startNewJourney begins the flow, refusing when an incomplete journey
// already exists. The active-journey check and the later create are not
// atomic; a concurrent duplicate request from the same user can slip through.
func (c *Conversation) startNewJourney(ctx context.Context, userID int64) ([]entity.Reply, error) {
	active, err := c.journeyRepo.GetUserActiveJourney(ctx, userID)
	if err != nil {
		return c.failure(err)
	}
	if active != nil {
		return []entity.Reply{entity.NewReply("You already have an active journey. Use /cancel to cancel it first.")},
			ErrDuplicateActiveJourney
	}

	carriers, err := c.carrierRepo.List(ctx)
	if err != nil {
		return c.failure(err)
	}

	buttons := make([][]entity.Button, 0, len(carriers))
	for _, carrier := range carriers {
		buttons = append(buttons, []entity.Button{{
			Label:      carrier.Name,
			CallbackID: cbCarrierPrefix + strconv.FormatUint(uint64(carrier.ID), 10),
		}})
	}

	session := &entity.Session{
		UserID: userID,
		ChatID: userID,
		State:  entity.StateChoosingCarrier,
	}
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{entity.NewReplyWithButtons("Choose your carrier:", buttons)}, nil
}

func (c *Conversation) chooseCarrierByName(ctx context.Context, session *entity.Session, name string) ([]entity.Reply, error) {
	carrier, err := c.carrierRepo.GetByName(ctx, name)
	if err != nil {
		return c.failure(err)
	}
	if carrier == nil {
		// Invalid input does not advance the state
		return []entity.Reply{entity.NewReply("Unknown carrier. Please choose one from the list.")}, nil
	}
	return c.carrierChosen(ctx, session, carrier.ID, carrier.Name, entity.RenderSendNew)
}

func (c *Conversation) chooseCarrierByID(ctx context.Context, session *entity.Session, idStr string) ([]entity.Reply, error) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return []entity.Reply{entity.NewReply("Unknown carrier. Please choose one from the list.")}, nil
	}
	carrier, err := c.carrierRepo.GetByID(ctx, uint(id))
	if err != nil {
		return c.failure(err)
	}
	if carrier == nil {
		return []entity.Reply{entity.NewReply("Unknown carrier. Please choose one from the list.")}, nil
	}
	return c.carrierChosen(ctx, session, carrier.ID, carrier.Name, entity.RenderReplaceLast)
}

func (c *Conversation) carrierChosen(ctx context.Context, session *entity.Session, id uint, name string, mode entity.RenderMode) ([]entity.Reply, error) {
	session.CarrierID = id
	session.CarrierName = name
	session.State = entity.StateEnteringDepartureDate
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{{
		Text: fmt.Sprintf("Carrier selected: %s\n\nEnter the departure date (YYYY-MM-DD):", name),
		Mode: mode,
	}}, nil
}

func (c *Conversation) enterDepartureDate(ctx context.Context, session *entity.Session, text string) ([]entity.Reply, error) {
	if _, err := time.Parse(timeutil.DateLayout, text); err != nil {
		return []entity.Reply{entity.NewReply("Invalid date format. Use YYYY-MM-DD (for example, 2024-11-27).")}, nil
	}

	// Only the raw string is stored; UTC conversion waits for the timezone
	session.DepartureDate = text
	session.State = entity.StateEnteringDepartureTime
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{entity.NewReply("Enter the departure time (HH:MM, for example, 14:30):")}, nil
}

func (c *Conversation) enterDepartureTime(ctx context.Context, session *entity.Session, text string) ([]entity.Reply, error) {
	if _, err := time.Parse(timeutil.ClockLayout, text); err != nil {
		return []entity.Reply{entity.NewReply("Invalid time format. Use HH:MM (for example, 14:30).")}, nil
	}

	session.DepartureTime = text
	session.State = entity.StateChoosingTimezone
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{entity.NewReplyWithButtons("Choose your timezone:", timezoneButtons())}, nil
}

// chooseInitialTimezone finalizes the journey setup: the stored departure
// date and time are resolved to a UTC instant in the chosen zone, the journey
// record is created, and the ordered checkpoint list is fetched.
func (c *Conversation) chooseInitialTimezone(ctx context.Context, session *entity.Session, tz string) ([]entity.Reply, error) {
	if !isSupportedTimezone(tz) {
		return []entity.Reply{entity.NewReplyWithButtons("Unsupported timezone. Please choose one from the list.", timezoneButtons())}, nil
	}

	departureUTC, err := timeutil.LocalToUTC(session.DepartureDate, session.DepartureTime, tz)
	if err != nil {
		c.logger.Error("Failed to resolve departure instant", "error", err, "userId", session.UserID)
		return c.failure(err)
	}

	journey, err := c.journeyRepo.Create(ctx, session.UserID, session.CarrierID, departureUTC)
	if err != nil {
		return c.failure(err)
	}

	checkpoints, err := c.checkpointRepo.ListMandatory(ctx)
	if err != nil {
		return c.failure(err)
	}
	ids := make([]uint, 0, len(checkpoints))
	for _, cp := range checkpoints {
		ids = append(ids, cp.ID)
	}

	session.Timezone = tz
	session.JourneyID = journey.ID
	session.CheckpointIDs = ids
	session.CheckpointIndex = 0
	session.ReferenceUTC = departureUTC
	session.State = CheckpointStates[0]
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	c.metrics.JourneysStarted.Inc()
	c.logger.Info("Journey created",
		"journeyId", journey.ID,
		"userId", session.UserID,
		"carrier", session.CarrierName,
		"departureUtc", departureUTC)

	created := entity.Reply{
		Text: fmt.Sprintf("Journey created!\nCarrier: %s\nDeparture: %s\n\nMark checkpoints as you pass them.",
			session.CarrierName, timeutil.FormatInTimezone(departureUTC, tz)),
		Mode: entity.RenderReplaceLast,
	}
	return []entity.Reply{created, c.checkpointPrompt(session)}, nil
}

// recordCheckpoint resolves the entered time for checkpoint index, validates
// it against the reference instant, and persists the event. Rejections
// re-prompt without advancing the state.
func (c *Conversation) recordCheckpoint(ctx context.Context, session *entity.Session, index int, text string) ([]entity.Reply, error) {
	var timestamp time.Time
	source := entity.SourceManual

	if strings.EqualFold(text, cbNow) {
		timestamp = c.now()
		source = entity.SourceAuto
	} else {
		var err error
		timestamp, err = timeutil.InferCheckpointTime(text, session.ReferenceUTC, session.Timezone)
		if err != nil {
			return []entity.Reply{entity.NewReply("Invalid time format. Use HH:MM or press 'Now'.")}, nil
		}
	}

	previous := session.ReferenceUTC
	if err := timeutil.ValidateCheckpointOrder(timestamp, &previous, c.maxGap); err != nil {
		switch {
		case errors.Is(err, timeutil.ErrOutOfOrder):
			c.metrics.ValidationRejections.WithLabelValues("out_of_order").Inc()
			return []entity.Reply{entity.NewReply("That time is before the previous checkpoint. Please enter a correct time.")}, nil
		case errors.Is(err, timeutil.ErrGapTooLarge):
			c.metrics.ValidationRejections.WithLabelValues("gap_too_large").Inc()
			return []entity.Reply{entity.NewReply(fmt.Sprintf(
				"That is more than %d hours after the previous checkpoint. Please check the time.",
				int(c.maxGap.Hours())))}, nil
		}
		return c.failure(errors.New("unexpected validation result"))
	}

	if index >= len(session.CheckpointIDs) {
		return c.failure(fmt.Errorf("checkpoint index %d out of range", index))
	}

	event := &entity.JourneyEvent{
		JourneyID:    session.JourneyID,
		CheckpointID: session.CheckpointIDs[index],
		TimestampUTC: timestamp,
		Source:       source,
		Timezone:     session.Timezone,
	}
	if _, err := c.eventRepo.Create(ctx, event); err != nil {
		// Earlier events stay persisted; the user can retry this checkpoint
		return c.failure(err)
	}

	c.metrics.EventsRecorded.Inc()

	session.ReferenceUTC = timestamp
	session.CheckpointIndex = index + 1

	if session.CheckpointIndex < len(session.CheckpointIDs) {
		session.State = CheckpointStates[session.CheckpointIndex]
		if err := c.sessionRepo.Save(ctx, session); err != nil {
			return c.failure(err)
		}

		recorded := entity.NewReply(fmt.Sprintf("%s recorded at %s",
			CheckpointDisplayName(checkpointKey(index)),
			timeutil.FormatInTimezone(timestamp, session.Timezone)))
		return []entity.Reply{recorded, c.checkpointPrompt(session)}, nil
	}

	return c.completeJourney(ctx, session)
}

// completeJourney marks the journey completed, renders the summary, and
// destroys the session
func (c *Conversation) completeJourney(ctx context.Context, session *entity.Session) ([]entity.Reply, error) {
	if err := c.journeyRepo.Complete(ctx, session.JourneyID); err != nil {
		return c.failure(err)
	}

	events, err := c.eventRepo.ListByJourney(ctx, session.JourneyID)
	if err != nil {
		return c.failure(err)
	}

	summary := BuildSummary(events, session.Timezone)

	if err := c.sessionRepo.Delete(ctx, session.UserID); err != nil {
		c.logger.Warn("Failed to delete session after completion", "userId", session.UserID, "error", err)
	}

	c.metrics.JourneysCompleted.Inc()
	c.logger.Info("Journey completed", "journeyId", session.JourneyID, "userId", session.UserID)

	return []entity.Reply{entity.NewReply(summary), entity.NewReply(thankYouText)}, nil
}

// isSubFlowState reports whether a state belongs to a sub-flow that will
// restore ReturnState on exit. Entering another sub-flow from one of these
// must keep the original ReturnState, or the checkpoint to return to is lost.
func isSubFlowState(s entity.State) bool {
	return s == entity.StateChangingTimezone || s == entity.StateConfirmingCancel
}

// beginTimezoneChange enters the timezone sub-flow from a checkpoint state.
// Completing it returns to the same checkpoint without advancing progress.
func (c *Conversation) beginTimezoneChange(ctx context.Context, session *entity.Session) ([]entity.Reply, error) {
	if _, ok := checkpointStateIndex(session.State); !ok {
		return []entity.Reply{entity.NewReply("You can change the timezone only while passing checkpoints.")}, nil
	}

	session.ReturnState = session.State
	session.State = entity.StateChangingTimezone
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{entity.NewReplyWithButtons("Choose the new timezone:", timezoneButtons())}, nil
}

func (c *Conversation) requestTimezoneChange(ctx context.Context, userID int64) ([]entity.Reply, error) {
	session, err := c.sessionRepo.Get(ctx, userID)
	if err != nil {
		return c.failure(err)
	}
	if session == nil {
		return []entity.Reply{entity.NewReply("No active journey. Use /new to start one.")}, nil
	}
	return c.beginTimezoneChange(ctx, session)
}

func (c *Conversation) changeTimezone(ctx context.Context, session *entity.Session, tz string) ([]entity.Reply, error) {
	if !isSupportedTimezone(tz) {
		return []entity.Reply{entity.NewReplyWithButtons("Unsupported timezone. Please choose one from the list.", timezoneButtons())}, nil
	}

	session.Timezone = tz
	c.restoreReturnState(session)
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	changed := entity.Reply{
		Text: fmt.Sprintf("Timezone changed to %s.", tz),
		Mode: entity.RenderReplaceLast,
	}
	return []entity.Reply{changed, c.checkpointPrompt(session)}, nil
}

// requestCancel asks for confirmation before cancelling; the journey and
// session are only touched after the user confirms
func (c *Conversation) requestCancel(ctx context.Context, userID int64) ([]entity.Reply, error) {
	session, err := c.sessionRepo.Get(ctx, userID)
	if err != nil {
		return c.failure(err)
	}
	if session == nil {
		return []entity.Reply{entity.NewReply("No active journey to cancel.")}, nil
	}

	if !isSubFlowState(session.State) {
		session.ReturnState = session.State
	}
	session.State = entity.StateConfirmingCancel
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	return []entity.Reply{c.cancelPrompt(ctx, session)}, nil
}

func (c *Conversation) cancelPrompt(ctx context.Context, session *entity.Session) entity.Reply {
	text := "Cancel the current journey?"
	if session.JourneyID != "" {
		journey, err := c.journeyRepo.GetByID(ctx, session.JourneyID)
		if err != nil {
			c.logger.Warn("Failed to load journey for cancel prompt", "journeyId", session.JourneyID, "error", err)
		} else {
			text = fmt.Sprintf("Cancel the journey departing %s?",
				timeutil.FormatInTimezone(journey.DepartureUTC, session.Timezone))
		}
	}
	return entity.NewReplyWithButtons(text, [][]entity.Button{{
		{Label: "Yes, cancel", CallbackID: cbCancelYes},
		{Label: "No, continue", CallbackID: cbCancelNo},
	}})
}

// restoreReturnState exits a sub-flow by restoring the saved state. An empty
// saved state mid-journey falls back to the current checkpoint so the flow
// can never strand in a dead state.
func (c *Conversation) restoreReturnState(session *entity.Session) {
	session.State = session.ReturnState
	session.ReturnState = ""
	if session.State == "" && session.JourneyID != "" {
		session.State = CheckpointStates[session.CheckpointIndex]
	}
}

func (c *Conversation) confirmCancel(ctx context.Context, session *entity.Session) ([]entity.Reply, error) {
	if session.JourneyID != "" {
		if err := c.journeyRepo.Cancel(ctx, session.JourneyID, "Cancelled by user"); err != nil {
			return c.failure(err)
		}
		c.metrics.JourneysCancelled.Inc()
	}

	if err := c.sessionRepo.Delete(ctx, session.UserID); err != nil {
		return c.failure(err)
	}

	c.logger.Info("Journey cancelled", "journeyId", session.JourneyID, "userId", session.UserID)
	return []entity.Reply{entity.NewReply("Journey cancelled.\n\nUse /new to start a new journey.")}, nil
}

func (c *Conversation) resumeAfterCancelPrompt(ctx context.Context, session *entity.Session) ([]entity.Reply, error) {
	c.restoreReturnState(session)
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return c.failure(err)
	}

	if _, ok := checkpointStateIndex(session.State); ok {
		return []entity.Reply{c.checkpointPrompt(session)}, nil
	}
	return []entity.Reply{entity.NewReply("Resuming the journey setup.")}, nil
}

// showStats renders the latest completed crossings with their total time
func (c *Conversation) showStats(ctx context.Context) ([]entity.Reply, error) {
	journeys, err := c.journeyRepo.ListRecentCompleted(ctx, c.statsLimit)
	if err != nil {
		return c.failure(err)
	}
	if len(journeys) == 0 {
		return []entity.Reply{entity.NewReply("No data yet. Be the first to contribute!")}, nil
	}

	var b strings.Builder
	b.WriteString("Latest border crossings:\n\n")
	for _, journey := range journeys {
		if len(journey.Events) < 2 {
			continue
		}
		first := journey.Events[0].TimestampUTC
		last := journey.Events[len(journey.Events)-1].TimestampUTC
		total := int(last.Sub(first).Minutes())

		carrierName := "Unknown"
		if journey.Carrier != nil {
			carrierName = journey.Carrier.Name
		}

		b.WriteString(fmt.Sprintf("%s\n%s\n%s\n\n",
			carrierName,
			timeutil.FormatInTimezone(first, c.defaultTZ),
			FormatDuration(total)))
	}

	return []entity.Reply{entity.NewReply(b.String())}, nil
}

// checkpointPrompt renders the prompt for the session's current checkpoint
func (c *Conversation) checkpointPrompt(session *entity.Session) entity.Reply {
	index := session.CheckpointIndex
	total := len(session.CheckpointIDs)

	text := fmt.Sprintf("Checkpoint %d/%d\n%s\n\nEnter the time (HH:MM) or press 'Now':",
		index+1, total, CheckpointDisplayName(checkpointKey(index)))

	return entity.NewReplyWithButtons(text, [][]entity.Button{
		{{Label: "Now", CallbackID: cbNow}},
		{{Label: "Change timezone", CallbackID: cbChangeTimezone}},
	})
}

// checkpointKey returns the canonical key for an ordinal position
func checkpointKey(index int) string {
	if index < 0 || index >= len(entity.MandatoryCheckpointSequence) {
		return fmt.Sprintf("checkpoint_%d", index)
	}
	return entity.MandatoryCheckpointSequence[index]
}

func timezoneButtons() [][]entity.Button {
	buttons := make([][]entity.Button, 0, len(SupportedTimezones))
	for _, tz := range SupportedTimezones {
		buttons = append(buttons, []entity.Button{{Label: tz, CallbackID: cbTimezonePrefix + tz}})
	}
	return buttons
}

// failure surfaces a store or internal error as a generic user-facing reply.
// Already-committed writes are not rolled back.
func (c *Conversation) failure(err error) ([]entity.Reply, error) {
	c.logger.Error("Conversation step failed", "error", err)
	return []entity.Reply{entity.NewReply(genericFailureText)}, err
}
