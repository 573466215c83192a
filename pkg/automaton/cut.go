package automaton

import "fmt"

// Cut segments text using the automaton's dictionary. With cutAll=false it
// performs a character-indexed dynamic program that maximizes summed
// log-probability (see maxProb/pre below); with cutAll=true it instead
// emits every dictionary match of length >= 2 plus every single-character
// segment, with no traceback.
//
// Cut mutates and restores the automaton's current transition state
// around its own traversal (it always starts from root), so concurrent
// Cut calls on the same *Automaton are not safe — see CutFrom.
func (a *Automaton) Cut(text string, cutAll bool) ([]string, error) {
	savedState := a.curState
	words, err := a.cut(text, cutAll)
	a.curState = savedState
	return words, err
}

// CutFrom is the stateless counterpart of Cut: it takes the starting
// transition state explicitly and never touches the automaton's shared
// current-state field, so distinct goroutines can call it concurrently on
// a built, read-only Automaton as long as each passes its own state (root,
// in the common case).
func (a *Automaton) CutFrom(startState uint32, text string, cutAll bool) ([]string, error) {
	saved := a.curState
	a.curState = startState
	words, err := a.cut(text, cutAll)
	a.curState = saved
	return words, err
}

// atMaxProb treats index -1 as the virtual "before any character" prefix,
// whose log-probability is 0 (log of certainty 1): a dictionary match or
// run that starts at the very beginning of text needs this, since pre[]
// and the DP recurrences are expressed as if max_prob had an entry at -1.
func atMaxProb(maxProb []float64, idx int) float64 {
	if idx < 0 {
		return 0
	}
	return maxProb[idx]
}

func (a *Automaton) cut(text string, cutAll bool) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	n := len(text)
	minProb := -a.nodes[root].LogTrieSum

	maxProb := make([]float64, 0, n)
	utf8Start := make([]int, 0, n)
	pre := make([]int, 0, n)
	var words []string

	collect := func(byteStart, byteLen int) {
		words = append(words, text[byteStart:byteStart+byteLen])
	}

	a.curState = root

	numStart, alphaStart := -1, -1 // character index, or -1
	i, j := 0, 0                   // byte offset, character index

	for i < n {
		charLen := utf8LeadLen(text[i])
		if charLen == 0 || i+charLen > n {
			return nil, fmt.Errorf("cut: %w", ErrInvalidUTF8)
		}

		for k := 0; k < charLen; k++ {
			a.TransByte(text[i+k])
		}

		maxProb = append(maxProb, atMaxProb(maxProb, j-1)+minProb)
		pre = append(pre, j-1)
		utf8Start = append(utf8Start, i)

		isDigit := charLen == 1 && text[i] >= '0' && text[i] <= '9'
		isAlpha := charLen == 1 && ((text[i] >= 'a' && text[i] <= 'z') || (text[i] >= 'A' && text[i] <= 'Z'))

		if isDigit {
			if numStart == -1 {
				numStart = j
			} else {
				candidate := atMaxProb(maxProb, numStart-1) + minProb/a.segCfg.RunGluePenaltyDivisor
				if candidate > maxProb[j] {
					maxProb[j] = candidate
					pre[j] = numStart - 1
				}
			}
		} else {
			numStart = -1
		}

		if isAlpha {
			if alphaStart == -1 {
				alphaStart = j
			} else {
				candidate := atMaxProb(maxProb, alphaStart-1) + minProb/a.segCfg.RunGluePenaltyDivisor
				if candidate > maxProb[j] {
					maxProb[j] = candidate
					pre[j] = alphaStart - 1
				}
			}
		} else {
			alphaStart = -1
		}

		if cutAll {
			// trivial single-character segment at the current position
			collect(utf8Start[j], charLen)
		}

		borders, err := a.GetBorders(a.curState)
		if err != nil {
			return nil, err
		}
		for _, border := range borders {
			if !border.Accepting() {
				continue
			}
			preNode := a.nodes[border.Pre]
			lenBorder := int(border.Length)

			if cutAll && lenBorder != 1 {
				start := utf8Start[j-lenBorder+1]
				collect(start, i+charLen-start)
			}

			candidate := atMaxProb(maxProb, j-lenBorder) + (border.LogEnd - preNode.LogTrieSum)
			if candidate > maxProb[j] {
				maxProb[j] = candidate
				pre[j] = j - lenBorder
			}
		}

		i += charLen
		j++
	}

	if cutAll {
		return words, nil
	}

	utf8Start = append(utf8Start, n)

	j--
	for j >= 0 {
		start := utf8Start[pre[j]+1]
		end := utf8Start[j+1]
		collect(start, end-start)
		j = pre[j]
	}

	for l, r := 0, len(words)-1; l < r; l, r = l+1, r-1 {
		words[l], words[r] = words[r], words[l]
	}

	return words, nil
}
