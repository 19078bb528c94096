// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package quiz

// repairJSON fixes common malformations in LLM-produced JSON,
// currently keys that lost their opening quote, as in `, points": 1`.
func repairJSON(s string) string {
	runes := []rune(s)
	fixed := make([]rune, 0, len(runes)+16)

	i := 0
	for i < len(runes) {
		ch := runes[i]

		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			fixed = append(fixed, runes[i])
			i++
		}

		// A bare word directly followed by ": is a key missing its
		// opening quote.
		if i >= len(runes) || runes[i] == '"' || !isLetter(runes[i]) {
			continue
		}

		keyStart := i
		for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_') {
			i++
		}

		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			fixed = append(fixed, '"')
			fixed = append(fixed, runes[keyStart:i]...)
		} else {
			fixed = append(fixed, runes[keyStart:i]...)
		}
	}

	return string(fixed)
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
