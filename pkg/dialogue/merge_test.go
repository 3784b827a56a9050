package dialogue_test

import (
	"strings"
	"testing"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/dialogue"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Merge_001(t *testing.T) {
	assert := assert.New(t)
	result := dialogue.Merge(nil, dialogue.DefaultMinWords)
	assert.NotNil(result)
	assert.Empty(result)
}

func Test_Merge_002(t *testing.T) {
	// A short fragment from the other speaker is absorbed, and the next
	// utterance then matches the speaker of the merged turn
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "Bom dia, aqui é da loja"},
		{Speaker: "B", Text: "sim"},
		{Speaker: "A", Text: "gostaria de falar sobre seu boleto"},
	}
	result := dialogue.Merge(input, 3)
	assert.Equal([]schema.Utterance{
		{Speaker: "A", Text: "Bom dia, aqui é da loja sim gostaria de falar sobre seu boleto"},
	}, result)
}

func Test_Merge_003(t *testing.T) {
	// Long utterances from alternating speakers are kept apart
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "bom dia, aqui quem fala é a Ana"},
		{Speaker: "B", Text: "bom dia Ana, tudo bem com você"},
		{Speaker: "A", Text: "tudo ótimo, obrigada por perguntar"},
	}
	result := dialogue.Merge(input, 3)
	assert.Equal(input, result)
}

func Test_Merge_004(t *testing.T) {
	// Same speaker always merges, whatever the length
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "  primeira frase bem longa aqui  "},
		{Speaker: "A", Text: "segunda frase também bem longa"},
		{Speaker: "B", Text: "resposta do cliente com várias palavras"},
	}
	result := dialogue.Merge(input, 3)
	assert.Equal([]schema.Utterance{
		{Speaker: "A", Text: "primeira frase bem longa aqui segunda frase também bem longa"},
		{Speaker: "B", Text: "resposta do cliente com várias palavras"},
	}, result)
}

func Test_Merge_005(t *testing.T) {
	// Threshold is inclusive: three words with min_words=3 is a fragment,
	// four words is not
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "olá como vai você hoje"},
		{Speaker: "B", Text: "tudo bem sim"},
		{Speaker: "B", Text: "e você como está"},
	}
	result := dialogue.Merge(input, 3)
	assert.Equal([]schema.Utterance{
		{Speaker: "A", Text: "olá como vai você hoje tudo bem sim"},
		{Speaker: "B", Text: "e você como está"},
	}, result)
}

func Test_Merge_006(t *testing.T) {
	// With a zero threshold only same-speaker utterances merge
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "alô"},
		{Speaker: "B", Text: "oi"},
		{Speaker: "B", Text: "quem fala"},
	}
	assert.Equal([]schema.Utterance{
		{Speaker: "A", Text: "alô"},
		{Speaker: "B", Text: "oi quem fala"},
	}, dialogue.Merge(input, 0))
	assert.Equal(dialogue.Merge(input, 0), dialogue.Merge(input, -5))
}

func Test_Merge_007(t *testing.T) {
	// The input slice is not modified, and timings span the merged turn
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "bom dia aqui é da loja", Start: schema.SecToTimestamp(0), End: schema.SecToTimestamp(2)},
		{Speaker: "B", Text: "sim", Start: schema.SecToTimestamp(2), End: schema.SecToTimestamp(3)},
	}
	result := dialogue.Merge(input, 3)
	assert.Equal("bom dia aqui é da loja", input[0].Text)
	assert.Equal("sim", input[1].Text)
	if assert.Len(result, 1) {
		assert.Equal(schema.SecToTimestamp(0), result[0].Start)
		assert.Equal(schema.SecToTimestamp(3), result[0].End)
	}
}

func Test_Merge_008(t *testing.T) {
	// Merging is idempotent, never grows the transcript and preserves tokens
	for name, input := range fixtures() {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			once := dialogue.Merge(input, 3)
			twice := dialogue.Merge(once, 3)
			assert.Equal(once, twice)
			assert.LessOrEqual(len(once), len(input))
			assert.Equal(tokens(input), tokens(once))
		})
	}
}

func Test_Merge_009(t *testing.T) {
	// Length is equal only when nothing qualifies for merging
	assert := assert.New(t)
	input := []schema.Utterance{
		{Speaker: "A", Text: "uma frase com cinco palavras"},
		{Speaker: "B", Text: "outra frase com cinco palavras"},
	}
	assert.Len(dialogue.Merge(input, 3), 2)
	input = append(input, schema.Utterance{Speaker: "A", Text: "ok"})
	assert.Len(dialogue.Merge(input, 3), 2)
}

///////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func fixtures() map[string][]schema.Utterance {
	return map[string][]schema.Utterance{
		"empty": {},
		"single": {
			{Speaker: "A", Text: "alô"},
		},
		"fragments": {
			{Speaker: "A", Text: "alô"},
			{Speaker: "B", Text: "oi"},
			{Speaker: "A", Text: "tudo"},
			{Speaker: "B", Text: "bem"},
		},
		"call": {
			{Speaker: "A", Text: "Lojas Caedu, bom dia, meu nome é Carla"},
			{Speaker: "B", Text: "bom dia"},
			{Speaker: "A", Text: "estou falando com o senhor João da Silva"},
			{Speaker: "B", Text: "sim é ele mesmo quem fala"},
			{Speaker: "B", Text: "pode falar"},
			{Speaker: "A", Text: "o senhor tem uma parcela em aberto desde março"},
			{Speaker: "B", Text: "ok"},
			{Speaker: "C", Text: "posso pagar na semana que vem sem juros"},
		},
	}
}

func tokens(utterances []schema.Utterance) []string {
	result := []string{}
	for _, utterance := range utterances {
		result = append(result, strings.Fields(utterance.Text)...)
	}
	return result
}
