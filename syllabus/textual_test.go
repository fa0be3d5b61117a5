package syllabus

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextual_TwoBoundariesInOrder(t *testing.T) {
	text := "SUBJECT CODE: CS301\nData Structures Lab\n" +
		"UNIT_01: Implement stack operations using arrays\n" +
		"UNIT_02: Implement queue operations using linked list\n" +
		"SUBJECT CODE: CS302\nOperating Systems Lab\n" +
		"UNIT_01: Simulate round robin CPU scheduling\n"

	res := extractTextual(context.Background(), text, 4)

	require.Len(t, res.Subjects, 2)
	assert.Equal(t, "Data Structures Lab", res.Subjects[0].Name)
	assert.Equal(t, "CS301", res.Subjects[0].Code)
	assert.Equal(t, "Operating Systems Lab", res.Subjects[1].Name)
	assert.Equal(t, "CS302", res.Subjects[1].Code)

	first := res.Subjects[0].Experiments
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].ID)
	assert.Equal(t, 2, first[1].ID)
	require.NotNil(t, first[1].Unit)
	assert.Equal(t, 2, *first[1].Unit)
	assert.Equal(t, "Implement queue operations using linked list", first[1].Topic)
	assert.Equal(t, "Practical exercise: Implement queue operations using linked list", first[1].Description)
	assert.Equal(t, first[1].Topic, first[1].SuggestedSimulation)

	second := res.Subjects[1].Experiments
	require.Len(t, second, 1)
	assert.Equal(t, 1, second[0].ID, "ids are local to each subject")
}

func TestExtractTextual_NumberedListVerbFilter(t *testing.T) {
	text := "Physics Practical\n" +
		"1. Measure the focal length of a convex lens\n" +
		"2. Introduction to the laboratory safety rules\n" +
		"3. Calculate the refractive index of a glass slab\n" +
		"5. Total marks: 100 for the semester\n"

	res := extractTextual(context.Background(), text, 1)

	require.Len(t, res.Subjects, 1)
	s := res.Subjects[0]
	assert.Equal(t, "Physics Practical", s.Name)
	assert.Equal(t, "", s.Code)
	require.Len(t, s.Experiments, 2)
	assert.Equal(t, "Measure the focal length of a convex lens", s.Experiments[0].Topic)
	assert.Equal(t, "Lab activity: Measure the focal length of a convex lens", s.Experiments[0].Description)
	assert.Nil(t, s.Experiments[0].Unit)
	assert.Equal(t, "Calculate the refractive index of a glass slab", s.Experiments[1].Topic)
	assert.Equal(t, 2, s.Experiments[1].ID)
}

func TestExtractTextual_GradingLinesRejected(t *testing.T) {
	text := "UNIT 1: Total credits assigned to this course\n" +
		"UNIT 2: Practical hrs per week are four\n" +
		"UNIT 3: Internal marks distribution scheme\n"

	res := extractTextual(context.Background(), text, 1)
	assert.True(t, res.Empty())
}

func TestExtractTextual_BracketTailRemoved(t *testing.T) {
	text := "UNIT_04: Implement a binary search tree (10 hrs)\n"

	res := extractTextual(context.Background(), text, 1)

	require.Len(t, res.Subjects, 1)
	require.Len(t, res.Subjects[0].Experiments, 1)
	assert.Equal(t, "Implement a binary search tree", res.Subjects[0].Experiments[0].Topic)
	assert.Equal(t, UnknownSubject, res.Subjects[0].Name)
}

func TestExtractTextual_NumberedListSkippedWhenUnitsSuffice(t *testing.T) {
	text := "UNIT_01: Write a program for matrix addition\n" +
		"UNIT_02: Write a program for matrix transpose\n" +
		"UNIT_03: Write a program for matrix product\n" +
		"1. Design a calculator using functions only\n"

	res := extractTextual(context.Background(), text, 1)

	require.Len(t, res.Subjects, 1)
	assert.Len(t, res.Subjects[0].Experiments, 3)
}

func TestExtractTextual_CapAtTwenty(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&sb, "%d. Write a program that solves task %d\n", i, i)
	}

	res := extractTextual(context.Background(), sb.String(), 4)

	require.Len(t, res.Subjects, 1)
	exps := res.Subjects[0].Experiments
	require.Len(t, exps, maxExperimentsPerSubject)
	assert.Equal(t, "Write a program that solves task 1", exps[0].Topic)
	assert.Equal(t, "Write a program that solves task 20", exps[19].Topic)
	assert.Equal(t, 20, exps[19].ID)
}

func TestExtractTextual_Empty(t *testing.T) {
	res := extractTextual(context.Background(), "", 4)
	assert.Equal(t, "", res.Branch)
	require.NotNil(t, res.Subjects)
	assert.Empty(t, res.Subjects)
}

func TestExtractTextual_Branch(t *testing.T) {
	text := "Department: Computer Engineering\n" +
		"SUBJECT CODE: 3140705\nData Structures Lab\n" +
		"UNIT_01: Implement stack operations using arrays\n"

	res := extractTextual(context.Background(), text, 1)
	assert.Equal(t, "Computer Engineering", res.Branch)
	require.Len(t, res.Subjects, 1)
}

func TestDetectBranch_IgnoresProgramInsideWords(t *testing.T) {
	assert.Equal(t, "", detectBranch("Write programs using Java\nProgramming in C"))
	assert.Equal(t, "Electronics", detectBranch("PROGRAM: Electronics"))
}

func TestDetectBranch_DepartmentOf(t *testing.T) {
	assert.Equal(t, "Computer Science and Engineering",
		detectBranch("Department of Computer Science and Engineering\nLab Manual"))
	assert.Equal(t, "", detectBranch("Department of physics"))
}

func TestSubjectMetadata(t *testing.T) {
	name, code := SubjectMetadata("Course: Digital Electronics Lab\nSubject Code: EC204\n")
	assert.Equal(t, "Digital Electronics Lab", name)
	assert.Equal(t, "EC204", code)

	name, code = SubjectMetadata("nothing useful here")
	assert.Equal(t, "", name)
	assert.Equal(t, "", code)
}

func TestExtractTextual_Idempotent(t *testing.T) {
	text := "SUBJECT CODE: CS301\nData Structures Lab\n" +
		"UNIT_01: Implement stack operations using arrays\n"

	a := extractTextual(context.Background(), text, 4)
	b := extractTextual(context.Background(), text, 4)
	assert.Equal(t, a, b)
}

func TestExtractTextual_OrderStableUnderParallelism(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&sb, "SUBJECT CODE: S%02d\nSubject number %d\nUNIT_01: Implement exercise set %d\n", i, i, i)
	}

	seq := extractTextual(context.Background(), sb.String(), 1)
	par := extractTextual(context.Background(), sb.String(), 8)

	require.Len(t, seq.Subjects, 12)
	assert.Equal(t, seq, par)
	for i, s := range par.Subjects {
		assert.Equal(t, fmt.Sprintf("S%02d", i+1), s.Code)
	}
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "Heat transfer fins", normalizeSpace("  Heat transfer\n\tfins "))
	assert.Equal(t, "Measure 1 m", normalizeSpace("Measure\u00a01\u00a0 m"))
	assert.Equal(t, "caf\u00e9", normalizeSpace("cafe\u0301"))
}

func TestNormalizeSpace_KeepsCompatibilityCharacters(t *testing.T) {
	for _, topic := range []string{"Verify \u00bd wave rectifier", "Flow in a \ufb01lter bed", "Plot x\u00b2 against t"} {
		assert.Equal(t, topic, normalizeSpace(topic))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "é–", Truncate("é–x", 2))
	assert.Equal(t, "abc", Truncate("abc", 10))
}
