package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	tagPrefix   = "T:"
)

// RawCard is the textual content of one parsed card, before ids and
// scheduling state are assigned.
type RawCard struct {
	Front string
	Back  string
	Tag   string
}

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingTag
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]RawCard, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. Cards are `Q:` /
// `A:` / `T:` blocks; a `---` line or a new `Q:` starts the next card.
// Blocks may span multiple lines.
func Parse(r io.Reader) ([]RawCard, error) {
	scanner := bufio.NewScanner(r)
	var cards []RawCard
	var currentCard RawCard
	var currentBlock []string
	currentState := seeking

	flushBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.Join(currentBlock, "\n")
		switch currentState {
		case readingFront:
			currentCard.Front = content
		case readingBack:
			currentCard.Back = content
		case readingTag:
			currentCard.Tag = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		flushBlock()
		if currentCard.Front != "" {
			cards = append(cards, currentCard)
		}
		currentCard = RawCard{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		isFront := strings.HasPrefix(line, frontPrefix)
		isBack := strings.HasPrefix(line, backPrefix)
		isTag := strings.HasPrefix(line, tagPrefix)

		if line == "---" {
			finishCard()
			continue
		}

		if isFront || isBack || isTag {
			flushBlock()

			switch {
			case isFront:
				if currentState != seeking { // A new question always starts a new card
					finishCard()
				}
				currentState = readingFront
				currentBlock = append(currentBlock, trimPrefix(line, frontPrefix))
			case isBack:
				currentState = readingBack
				currentBlock = append(currentBlock, trimPrefix(line, backPrefix))
			case isTag:
				currentState = readingTag
				currentBlock = append(currentBlock, trimPrefix(line, tagPrefix))
			}
		} else if currentState != seeking {
			currentBlock = append(currentBlock, line)
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	if strings.HasPrefix(content, " ") {
		content = content[1:]
	}
	return content
}
