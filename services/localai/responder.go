// Package localai is a rule-based responder that works without API keys.
// It backstops the provider chain when enabled, so the assistant still
// answers basic questions offline.
package localai

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var greetings = []string{
	"Hello! I'm AURA, your AI assistant. How can I help you?",
	"Hi there! AURA at your service.",
	"Namaste! What can I do for you today?",
	"Hey! Ready to assist you.",
}

var numberPattern = regexp.MustCompile(`\d+`)

// Responder generates replies from simple keyword rules
type Responder struct {
	now  func() time.Time
	rand *rand.Rand
}

// New creates a responder using the wall clock
func New() *Responder {
	return &Responder{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reply generates a response for the message. Never fails.
func (r *Responder) Reply(message string) string {
	lower := strings.ToLower(message)

	if containsAny(lower, "hello", "hi", "hey", "aura", "namaste") {
		return greetings[r.rand.Intn(len(greetings))]
	}

	if containsAny(lower, "time", "clock", "kitna baja") {
		return fmt.Sprintf("The current time is %s", r.now().Format("3:04 PM"))
	}

	if containsAny(lower, "date", "today", "day", "tarikh") {
		return fmt.Sprintf("Today is %s", r.now().Format("Monday, January 2, 2006"))
	}

	if answer, ok := r.tryArithmetic(message, lower); ok {
		return answer
	}

	if containsAny(lower, "joke", "funny", "mazak") {
		return "Why don't programmers like nature? It has too many bugs!"
	}

	if containsAny(lower, "help", "capabilities") {
		return "I can help with voice commands, automation, screen analysis, and more!"
	}

	return fmt.Sprintf("I understand. How can I assist you with: '%s'?", message)
}

func (r *Responder) tryArithmetic(message, lower string) (string, bool) {
	if !containsAny(lower, "+", "-", "*", "/", "plus", "minus") {
		return "", false
	}

	numbers := numberPattern.FindAllString(message, -1)
	if len(numbers) < 2 {
		return "", false
	}

	var a, b int
	if _, err := fmt.Sscanf(numbers[0], "%d", &a); err != nil {
		return "", false
	}
	if _, err := fmt.Sscanf(numbers[1], "%d", &b); err != nil {
		return "", false
	}

	switch {
	case strings.Contains(message, "+") || strings.Contains(lower, "plus"):
		return fmt.Sprintf("%d + %d = %d", a, b, a+b), true
	case strings.Contains(message, "-") || strings.Contains(lower, "minus"):
		return fmt.Sprintf("%d - %d = %d", a, b, a-b), true
	}
	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
