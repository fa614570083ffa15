package validation

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
)

func fields(errors []response.ValidationError) []string {
	names := make([]string, 0, len(errors))
	for _, e := range errors {
		names = append(names, e.Field)
	}
	return names
}

func TestDecodeBody_CreateRequiresTitle(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, violations, err := DecodeBody([]byte(`{}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(violations).To(HaveLen(1))
	Expect(violations[0].Field).To(Equal("title"))
	Expect(violations[0].Location).To(Equal(LocationBody))
	Expect(violations[0].Message).To(Equal("Title is required"))
}

func TestDecodeBody_EmptyBodyIsAnEmptyObject(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	provided, violations, err := DecodeBody(nil, &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(provided).To(BeEmpty())
	Expect(fields(violations)).To(Equal([]string{"title"}))
}

func TestDecodeBody_ReportsEveryViolation(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, violations, err := DecodeBody([]byte(`{
		"title": "`+strings.Repeat("x", 101)+`",
		"status": "DONE",
		"priority": "URGENT",
		"dueDate": "next week"
	}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(fields(violations)).To(ConsistOf("title", "status", "priority", "dueDate"))

	for _, violation := range violations {
		switch violation.Field {
		case "title":
			Expect(violation.Message).To(Equal("Title must not exceed 100 characters"))
		default:
			Expect(violation.Message).To(Equal("Invalid value"))
		}
	}
}

func TestDecodeBody_TitleOfExactlyMaxLength(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, violations, err := DecodeBody([]byte(`{"title": "`+strings.Repeat("ü", 100)+`"}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(violations).To(BeEmpty())
}

func TestDecodeBody_WrongJSONTypeIsAViolation(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, violations, err := DecodeBody([]byte(`{"title": 5, "priority": ["LOW"]}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(fields(violations)).To(Equal([]string{"title", "priority"}))
	Expect(violations[0].Message).To(Equal("Invalid value"))
}

func TestDecodeBody_MalformedJSON(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, _, err := DecodeBody([]byte(`{"title": `), &body)

	Expect(err).To(MatchError(ErrMalformedBody))
}

func TestDecodeBody_NonObjectBody(t *testing.T) {
	RegisterTestingT(t)

	var body request.CreateTaskRequest
	_, violations, err := DecodeBody([]byte(`[1, 2]`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(fields(violations)).To(Equal([]string{"body"}))
}

func TestDecodeBody_UpdateTracksProvidedFields(t *testing.T) {
	RegisterTestingT(t)

	var body request.UpdateTaskRequest
	provided, violations, err := DecodeBody([]byte(`{"title": "New", "priority": null}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(violations).To(BeEmpty())
	Expect(provided).To(Equal(map[string]bool{"title": true, "priority": true}))
	Expect(*body.Title).To(Equal("New"))
	Expect(body.Priority).To(BeNil())
}

func TestDecodeBody_UpdateAllowsMissingTitle(t *testing.T) {
	RegisterTestingT(t)

	var body request.UpdateTaskRequest
	_, violations, err := DecodeBody([]byte(`{"status": "COMPLETED", "dueDate": "2024-06-01"}`), &body)

	Expect(err).ToNot(HaveOccurred())
	Expect(violations).To(BeEmpty())
}

func TestValidateStruct_ObjectID(t *testing.T) {
	RegisterTestingT(t)

	violations := ValidateStruct(LocationParams, request.TaskIDParams{ID: "not-an-id"})

	Expect(violations).To(HaveLen(1))
	Expect(violations[0]).To(Equal(response.ValidationError{
		Field:    "id",
		Location: LocationParams,
		Message:  "Invalid task ID",
		Value:    "not-an-id",
	}))

	Expect(ValidateStruct(LocationParams, request.TaskIDParams{ID: "507f1f77bcf86cd799439011"})).To(BeEmpty())
}

func TestValidateStruct_ListQuery(t *testing.T) {
	RegisterTestingT(t)

	str := func(s string) *string { return &s }

	Expect(ValidateStruct(LocationQuery, request.ListTasksQuery{})).To(BeEmpty())

	Expect(ValidateStruct(LocationQuery, request.ListTasksQuery{
		Status: str("TODO"),
		Sort:   str("dueDate"),
		Order:  str("desc"),
		Limit:  str("1"),
		Skip:   str("0"),
	})).To(BeEmpty())

	violations := ValidateStruct(LocationQuery, request.ListTasksQuery{
		Status:   str("todo"),
		Priority: str("NONE"),
		Sort:     str("title"),
		Order:    str("up"),
		Limit:    str("0"),
		Skip:     str("-1"),
	})

	Expect(fields(violations)).To(ConsistOf("status", "priority", "sort", "order", "limit", "skip"))
	for _, violation := range violations {
		Expect(violation.Location).To(Equal(LocationQuery))
		Expect(violation.Message).To(Equal("Invalid value"))
	}

	Expect(fields(ValidateStruct(LocationQuery, request.ListTasksQuery{Limit: str("ten")}))).To(Equal([]string{"limit"}))
}
