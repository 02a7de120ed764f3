// Package docs embeds the user documentation served by `pvs topic`.
//
// Each .md file in this directory is one topic, addressed by its base name;
// readme.md is the index and is not itself a topic.
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var topicFiles embed.FS

// GetTopic returns the markdown content of one topic. The special name "*"
// expands to all topics.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics("*")
	}
	content, err := topicFiles.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("no documentation topic %q, see `pvs topic readme` for the list: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the content of the requested topics, expanding any
// "*" to every available topic.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			names = all
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics lists the available topic names, sorted.
func GetAllTopics() ([]string, error) {
	entries, err := topicFiles.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics, nil
}
