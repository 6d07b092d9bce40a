package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"medassist-backend/places"
)

// Collaborators are declared here, on the consumer side, so handlers and
// tests can substitute fakes without importing the real clients.

// Completer is the general medical chat service.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Searcher runs the geocode + nearby place search for a referral.
type Searcher interface {
	Search(ctx context.Context, location, specialty string) (string, error)
}

// Caller places the emergency escalation call.
type Caller interface {
	PlaceCall(ctx context.Context) error
}

const chatSystemPrompt = "You are Dr. Emily Hartman, a compassionate and knowledgeable AI medical consultant. " +
	"Your role is to provide accurate health information while maintaining a warm, supportive tone.\n\n" +
	"Guidelines for response:\n" +
	"1. **Empathy First**: Start by acknowledging the user's worry or situation nicely.\n" +
	"2. **Information Delivery**: Provide clear, structured medical facts (symptoms, treatments, etc.) using bullet points.\n" +
	"3. **Safety & Ethics**: Always clarify you are an AI, not a doctor. Do not diagnose. Advise consulting a professional.\n" +
	"4. **Tone**: Calm, professional, textual, and reassuring.\n" +
	"5. **Structure**: Use paragraphs for empathy, bullet points for lists (like symptoms), and a closing offering further help."

const (
	emergencyReassurance = "Emergency helpline has been contacted immediately. Please stay safe — help is on the way."
	chatFallback         = "I'm having technical difficulties, but I want you to know your feelings matter. Please try again shortly."
)

// routeState enumerates the triage state machine. Transitions are total: every
// state other than stateDone maps to exactly one successor for a given
// conversation state.
type routeState int

const (
	stateSafetyCheck routeState = iota
	stateEmergency
	stateReferralCheck
	stateReferral
	stateChat
	stateDone
)

// Outcome names the terminal action that produced the response.
type Outcome string

const (
	OutcomeEmergency Outcome = "emergency"
	OutcomeReferral  Outcome = "referral"
	OutcomeChat      Outcome = "chat"
)

// conversationState is owned by a single Respond call and never shared.
type conversationState struct {
	input       string
	isEmergency bool
	referral    *ReferralQuery
	output      string
	outcome     Outcome
}

// Router drives one message through safety check, referral check and the
// terminal action. The safety check always runs first and preempts routing.
type Router struct {
	chat   Completer
	places Searcher
	caller Caller
	log    zerolog.Logger
}

func NewRouter(chat Completer, searcher Searcher, caller Caller, log zerolog.Logger) *Router {
	return &Router{chat: chat, places: searcher, caller: caller, log: log}
}

// Respond runs the state machine to completion and returns the single
// terminal output for the message, plus which terminal action produced it.
func (r *Router) Respond(ctx context.Context, input string) (string, Outcome) {
	st := &conversationState{input: input}
	for s := stateSafetyCheck; s != stateDone; {
		s = r.step(ctx, s, st)
	}
	return st.output, st.outcome
}

func (r *Router) step(ctx context.Context, s routeState, st *conversationState) routeState {
	switch s {
	case stateSafetyCheck:
		st.isEmergency = DetectEmergency(st.input)
		if st.isEmergency {
			return stateEmergency
		}
		return stateReferralCheck

	case stateEmergency:
		// Fire-and-forget: a failed call is logged, never shown to an
		// at-risk user.
		if r.caller != nil {
			if err := r.caller.PlaceCall(ctx); err != nil {
				r.log.Error().Err(err).Msg("emergency call placement failed")
			}
		}
		st.output = emergencyReassurance
		st.outcome = OutcomeEmergency
		return stateDone

	case stateReferralCheck:
		loc, cond := ExtractReferral(st.input)
		if loc != "" {
			st.referral = &ReferralQuery{Location: loc, Condition: cond}
			return stateReferral
		}
		return stateChat

	case stateReferral:
		st.outcome = OutcomeReferral
		specialty := ResolveSpecialty(st.referral.Condition)
		out, err := r.places.Search(ctx, st.referral.Location, specialty)
		if err != nil {
			var geoErr *places.GeocodingError
			if errors.As(err, &geoErr) {
				st.output = fmt.Sprintf("⚠️ Couldn't find coordinates for '%s'.", st.referral.Location)
			} else {
				r.log.Error().Err(err).Str("location", st.referral.Location).Msg("place search failed")
				st.output = fmt.Sprintf("❌ Could not fetch data: %v", err)
			}
			return stateDone
		}
		st.output = out
		return stateDone

	case stateChat:
		st.outcome = OutcomeChat
		out, err := r.chat.Complete(ctx, chatSystemPrompt, st.input)
		if err != nil {
			r.log.Warn().Err(err).Msg("chat completion failed, using fallback")
			st.output = chatFallback
			return stateDone
		}
		st.output = out
		return stateDone
	}
	return stateDone
}
