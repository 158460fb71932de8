// Package chatbot answers common customer questions from a fixed FAQ.
package chatbot

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("chatbot: empty message")

// Topic names returned alongside replies.
const (
	TopicGreeting = "greeting"
	TopicFallback = "fallback"
)

// Entry is one FAQ answer and the words that trigger it.
type Entry struct {
	Topic       string
	Keywords    []string
	Answer      string
	Suggestions []string
}

// Reply is the bot's answer to one message.
type Reply struct {
	Reply       string   `json:"reply"`
	Topic       string   `json:"topic"`
	Suggestions []string `json:"suggestions"`
}

// Bot scores a message against its entries by keyword hits.
type Bot struct {
	entries  []Entry
	greeting Reply
	fallback Reply
}

var greetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "hiya": true, "greetings": true, "morning": true, "afternoon": true,
}

// New builds a Bot over entries.
func New(entries []Entry) *Bot {
	return &Bot{
		entries: entries,
		greeting: Reply{
			Reply:       "Hello! I can help with products, datasheets, quotes, delivery and warranty. What are you looking for?",
			Topic:       TopicGreeting,
			Suggestions: []string{"How do I request a quote?", "Where can I download a datasheet?", "What is the warranty?"},
		},
		fallback: Reply{
			Reply:       "I'm not sure about that one. Please use the contact form and our engineers will get back to you within one business day.",
			Topic:       TopicFallback,
			Suggestions: []string{"How do I contact sales?", "How do I request a quote?"},
		},
	}
}

// Default returns a Bot loaded with the standard FAQ.
func Default() *Bot {
	return New(DefaultEntries)
}

// Reply answers message. Ties go to the entry listed first.
func (b *Bot) Reply(message string) (Reply, error) {
	words := tokenize(message)
	if len(words) == 0 {
		return Reply{}, ErrEmptyMessage
	}

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}

	best, bestScore := -1, 0
	for i, e := range b.entries {
		score := 0
		for _, k := range e.Keywords {
			if matches(set, k) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best >= 0 {
		e := b.entries[best]
		return Reply{Reply: e.Answer, Topic: e.Topic, Suggestions: append([]string{}, e.Suggestions...)}, nil
	}
	if len(words) <= 3 && greetings[words[0]] {
		return b.greeting, nil
	}
	return b.fallback, nil
}

// matches reports whether keyword occurs in the word set. Multi-word
// keywords need every word present.
func matches(set map[string]bool, keyword string) bool {
	for _, part := range strings.Fields(keyword) {
		if !set[part] && !set[strings.TrimSuffix(part, "s")] && !set[part+"s"] {
			return false
		}
	}
	return true
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
