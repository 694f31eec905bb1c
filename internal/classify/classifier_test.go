package classify_test

import (
	"regexp"
	"testing"

	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStatus(t *testing.T, spec string) []classify.StatusCriterion {
	t.Helper()
	cs, err := classify.ParseStatusCodes(spec)
	require.NoError(t, err)
	return cs
}

func mustNumeric(t *testing.T, spec string) []classify.NumericCriterion {
	t.Helper()
	cs, err := classify.ParseNumericCriteria(spec)
	require.NoError(t, err)
	return cs
}

func TestClassify_MatcherOR(t *testing.T) {
	side := classify.Side{
		Mode:   classify.Or,
		Status: mustStatus(t, "200"),
		Size:   mustNumeric(t, "0-10"),
	}
	c := classify.New(side, classify.Side{})

	assert.True(t, c.Classify(classify.Response{StatusCode: 404, BodyLength: 5, LineCount: 1, WordCount: 1, ElapsedMS: 3}))
	assert.True(t, c.Classify(classify.Response{StatusCode: 200, BodyLength: 17, LineCount: 1, WordCount: 3, ElapsedMS: 4}))
	assert.False(t, c.Classify(classify.Response{StatusCode: 500, BodyLength: 500}))
}

func TestClassify_FilterDominance(t *testing.T) {
	matchAll := classify.Side{Status: mustStatus(t, "all")}
	filter404 := classify.Side{Status: mustStatus(t, "404")}
	c := classify.New(matchAll, filter404)

	assert.False(t, c.Classify(classify.Response{StatusCode: 404}))
	assert.True(t, c.Classify(classify.Response{StatusCode: 200}))
}

func TestClassify_EmptyMatcherAcceptsAll(t *testing.T) {
	c := classify.New(classify.Side{}, classify.Side{})
	assert.True(t, c.Classify(classify.Response{StatusCode: 999}))
}

func TestClassify_EmptyFilterRejectsNone(t *testing.T) {
	c := classify.New(classify.Side{Status: mustStatus(t, "all")}, classify.Side{})
	assert.True(t, c.Classify(classify.Response{StatusCode: 404}))
}

func TestClassify_ANDModeRequiresAllFamilies(t *testing.T) {
	side := classify.Side{
		Mode:   classify.And,
		Status: mustStatus(t, "200"),
		Size:   mustNumeric(t, "10-20"),
	}
	c := classify.New(side, classify.Side{})

	assert.True(t, c.Classify(classify.Response{StatusCode: 200, BodyLength: 15}))
	assert.False(t, c.Classify(classify.Response{StatusCode: 200, BodyLength: 999}))
}

func TestParseStatusCodes_All(t *testing.T) {
	cs := mustStatus(t, "ALL")
	assert.True(t, cs[0].Matches(999))
}

func TestParseStatusCodes_Empty(t *testing.T) {
	cs := mustStatus(t, "")
	assert.True(t, cs[0].Matches(1))
}

func TestParseStatusCodes_RangeAndList(t *testing.T) {
	cs, err := classify.ParseStatusCodes("200,300-399")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.True(t, cs[0].Matches(200))
	assert.False(t, cs[0].Matches(201))
	assert.True(t, cs[1].Matches(350))
	assert.False(t, cs[1].Matches(400))
}

func TestParseStatusCodes_Invalid(t *testing.T) {
	_, err := classify.ParseStatusCodes("not-a-code")
	assert.Error(t, err)
}

func TestParseTimeCriteria_RequiresPrefix(t *testing.T) {
	_, err := classify.ParseTimeCriteria("500")
	assert.Error(t, err)

	cs, err := classify.ParseTimeCriteria(">500")
	require.NoError(t, err)
	assert.True(t, cs[0].Matches(501))
	assert.False(t, cs[0].Matches(500))

	cs, err = classify.ParseTimeCriteria("<500")
	require.NoError(t, err)
	assert.True(t, cs[0].Matches(499))
}

func TestParseNumericCriteria_ExactAndRange(t *testing.T) {
	cs, err := classify.ParseNumericCriteria("5,10-20")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.True(t, cs[0].Matches(5))
	assert.False(t, cs[0].Matches(6))
	assert.True(t, cs[1].Matches(15))
}

func TestClassify_RegexFamily(t *testing.T) {
	re := regexp.MustCompile("admin")
	c := classify.New(classify.Side{Regex: []*regexp.Regexp{re}}, classify.Side{})

	assert.True(t, c.Classify(classify.Response{Body: "hello admin panel"}))
	assert.False(t, c.Classify(classify.Response{Body: "nothing here"}))
}
