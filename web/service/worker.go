package service

import (
	"strings"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/database/model"
)

// WorkerFilter narrows a worker listing. Zero values match everything.
type WorkerFilter struct {
	Search     string
	Status     string
	Department string
}

// WorkerService owns the field-personnel registry. Workers have no login
// capability and are independent of the user directory.
type WorkerService struct{}

// GetWorkers returns workers in insertion order, narrowed by the filter.
// Search matches name, email or role case-insensitively.
func (s *WorkerService) GetWorkers(filter WorkerFilter) ([]model.Worker, error) {
	db := database.GetDB()

	var workers []model.Worker
	err := db.Model(model.Worker{}).Order("rowid").Find(&workers).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.Worker, 0, len(workers))
	search := strings.ToLower(filter.Search)
	for _, w := range workers {
		if search != "" &&
			!strings.Contains(strings.ToLower(w.Name), search) &&
			!strings.Contains(strings.ToLower(w.Email), search) &&
			!strings.Contains(strings.ToLower(w.Role), search) {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		if filter.Department != "" && w.Department != filter.Department {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *WorkerService) GetWorker(id string) (*model.Worker, error) {
	db := database.GetDB()

	worker := &model.Worker{}
	err := db.Model(model.Worker{}).Where("id = ?", id).First(worker).Error
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// GetDepartments returns the distinct departments present in the registry.
func (s *WorkerService) GetDepartments() ([]string, error) {
	db := database.GetDB()

	var departments []string
	err := db.Model(model.Worker{}).Distinct("department").Order("department").Pluck("department", &departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (s *WorkerService) AddWorker(worker *model.Worker) error {
	db := database.GetDB()
	return db.Create(worker).Error
}

// UpdateWorker replaces the stored record in full; absent ids are a no-op.
func (s *WorkerService) UpdateWorker(worker *model.Worker) error {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.Worker{}).Where("id = ?", worker.Id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return db.Save(worker).Error
}

func (s *WorkerService) DeleteWorker(id string) error {
	db := database.GetDB()
	return db.Delete(&model.Worker{}, "id = ?", id).Error
}
