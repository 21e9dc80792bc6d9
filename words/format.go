package words

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// WordsPerLine is the number of array elements rendered per line.
const WordsPerLine = 4

// FormatScalar renders a single word as a C constant declaration.
func FormatScalar(name string, w uint32) string {
	return fmt.Sprintf("const uint32_t %s = 0x%08x;", name, w)
}

// FormatArray renders words as a C array declaration:
//
//	const uint32_t name[] = {
//		0x00000001,0x00000002,0x00000003,0x00000004,
//		0x00000005};
//
// Lines are broken after every WordsPerLine elements; a break after the last
// element only happens when it completes a line.
func FormatArray(name string, words []uint32) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "const uint32_t %s[] = {\n\t", name)

	for i, w := range words {
		fmt.Fprintf(&sb, "0x%08x", w)

		last := i == len(words)-1
		if !last {
			sb.WriteString(",")
		}
		if (i+1)%WordsPerLine == 0 {
			if !last {
				sb.WriteString("\n\t")
			} else {
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("};")
	return sb.String()
}

var hexWord = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// ParseScalar finds the declaration of name rendered by FormatScalar in text.
func ParseScalar(text, name string) (uint32, error) {
	re := regexp.MustCompile(`const\s+uint32_t\s+` + regexp.QuoteMeta(name) + `\s*=\s*(0x[0-9a-fA-F]+)\s*;`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("declaration of %s not found", name)
	}
	return parseWord(m[1])
}

// ParseArray finds the declaration of name rendered by FormatArray in text.
func ParseArray(text, name string) ([]uint32, error) {
	re := regexp.MustCompile(`const\s+uint32_t\s+` + regexp.QuoteMeta(name) + `\s*\[\s*\]\s*=\s*\{([^}]*)\}\s*;`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("declaration of %s[] not found", name)
	}

	literals := hexWord.FindAllString(m[1], -1)
	words := make([]uint32, len(literals))
	for i, lit := range literals {
		w, err := parseWord(lit)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		words[i] = w
	}
	return words, nil
}

func parseWord(lit string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(lit, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid word %q: %w", lit, err)
	}
	return uint32(v), nil
}
