// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package content is the educational lesson database behind the learn tool.
// Lessons are YAML records indexed by the commands and topics they teach.
package content

import (
	"fmt"
	"sort"
)

// Lesson is one educational unit.
type Lesson struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Topics   []string `yaml:"topics"`
	Commands []string `yaml:"commands"`
	Body     string   `yaml:"body"`
}

// Library is an indexed, read-only set of lessons.
type Library struct {
	lessons   []*Lesson
	byID      map[string]*Lesson
	byCommand map[string][]*Lesson
	byTopic   map[string][]*Lesson
}

// New indexes the given lessons. Lessons without an ID or with a duplicate
// ID are rejected.
func New(lessons []*Lesson) (*Library, error) {
	l := &Library{
		byID:      make(map[string]*Lesson),
		byCommand: make(map[string][]*Lesson),
		byTopic:   make(map[string][]*Lesson),
	}
	for _, lesson := range lessons {
		if lesson.ID == "" {
			return nil, fmt.Errorf("lesson %q has no id", lesson.Title)
		}
		if _, dup := l.byID[lesson.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %q", lesson.ID)
		}
		l.byID[lesson.ID] = lesson
		l.lessons = append(l.lessons, lesson)
		for _, cmd := range lesson.Commands {
			l.byCommand[cmd] = append(l.byCommand[cmd], lesson)
		}
		for _, topic := range lesson.Topics {
			l.byTopic[topic] = append(l.byTopic[topic], lesson)
		}
	}
	sort.Slice(l.lessons, func(i, j int) bool { return l.lessons[i].ID < l.lessons[j].ID })
	return l, nil
}

// All returns every lesson, ordered by ID.
func (l *Library) All() []*Lesson { return l.lessons }

// Len returns the number of lessons.
func (l *Library) Len() int { return len(l.lessons) }

// ByID returns the lesson with the given ID.
func (l *Library) ByID(id string) (*Lesson, bool) {
	lesson, ok := l.byID[id]
	return lesson, ok
}

// ForCommand returns the lessons that teach the given tool.
func (l *Library) ForCommand(cmd string) []*Lesson { return l.byCommand[cmd] }

// ForTopic returns the lessons tagged with the given topic.
func (l *Library) ForTopic(topic string) []*Lesson { return l.byTopic[topic] }

// Topics returns the sorted set of topics across all lessons.
func (l *Library) Topics() []string {
	topics := make([]string, 0, len(l.byTopic))
	for t := range l.byTopic {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}
