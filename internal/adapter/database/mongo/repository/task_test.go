package repository

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
)

func TestFindFilter(t *testing.T) {
	RegisterTestingT(t)

	status := domain.TaskStatusTodo
	priority := domain.TaskPriorityHigh

	Expect(FindFilter(port.TaskQuery{})).To(Equal(bson.M{"deletedAt": nil}))

	Expect(FindFilter(port.TaskQuery{Status: &status, Priority: &priority})).To(Equal(bson.M{
		"deletedAt": nil,
		"status":    domain.TaskStatusTodo,
		"priority":  domain.TaskPriorityHigh,
	}))
}

func TestFindOptions(t *testing.T) {
	RegisterTestingT(t)

	opts := FindOptions(port.TaskQuery{SortBy: "dueDate", Order: port.SortDesc, Limit: 5, Skip: 10})

	Expect(opts.Sort).To(Equal(bson.D{
		{Key: "dueDate", Value: -1},
		{Key: "_id", Value: 1},
	}))
	Expect(*opts.Limit).To(Equal(int64(5)))
	Expect(*opts.Skip).To(Equal(int64(10)))
}

func TestFindOptions_Defaults(t *testing.T) {
	RegisterTestingT(t)

	opts := FindOptions(port.TaskQuery{})

	Expect(opts.Sort).To(Equal(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	}))
	Expect(opts.Limit).To(BeNil())
	Expect(opts.Skip).To(BeNil())
}

func TestUpdateDocument_ClearsOmittedFields(t *testing.T) {
	RegisterTestingT(t)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	title := "Updated"
	status := domain.TaskStatusTodo

	set := UpdateDocument(port.TaskChanges{
		Title:          &title,
		SetTitle:       true,
		Status:         &status,
		SetStatus:      true,
		SetDescription: true,
		SetPriority:    true,
		SetDueDate:     true,
		UpdatedAt:      now,
	})

	Expect(set).To(HaveKeyWithValue("title", "Updated"))
	Expect(set).To(HaveKeyWithValue("status", domain.TaskStatusTodo))
	Expect(set).To(HaveKeyWithValue("updatedAt", now))
	Expect(set).To(HaveKeyWithValue("priority", BeNil()))
	Expect(set).To(HaveKeyWithValue("description", BeNil()))
	Expect(set).To(HaveKeyWithValue("dueDate", BeNil()))
}

func TestUpdateDocument_MergeWritesOnlyProvided(t *testing.T) {
	RegisterTestingT(t)

	priority := domain.TaskPriorityLow

	set := UpdateDocument(port.TaskChanges{
		Priority:    &priority,
		SetPriority: true,
		UpdatedAt:   time.Now(),
	})

	Expect(set).To(HaveLen(2))
	Expect(set).To(HaveKey("updatedAt"))
	Expect(set["priority"]).To(Equal(&priority))
}
