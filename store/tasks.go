package store

import (
	"context"
	"fmt"
)

// LoadTasks returns all the tasks in the tasks worksheet, from the cache if the cached list is still
// current.
func (s *Store) LoadTasks(ctx context.Context) ([]Task, error) {
	return cached(s, KeyTasks, func() ([]Task, error) {
		records, err := s.load(ctx, taskSchema)
		if err != nil {
			return nil, err
		}

		tasks := make([]Task, 0, len(records))
		for _, r := range records {
			tasks = append(tasks, taskFromRecord(r))
		}

		return tasks, nil
	})
}

// SaveTask adds a task to the tasks worksheet, replacing the existing row if there is already a
// task with the same name.
func (s *Store) SaveTask(ctx context.Context, task Task) error {
	return s.save(ctx, taskSchema, task.record())
}

// SaveTasks appends a batch of tasks to the tasks worksheet in a single API call.
func (s *Store) SaveTasks(ctx context.Context, tasks []Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.record())
	}

	return s.saveAll(ctx, taskSchema, records)
}

// UpdateTask overwrites the task with the given name. The name of the updated task may differ
// from name, in which case the task is renamed.
func (s *Store) UpdateTask(ctx context.Context, name string, task Task) error {
	if err := taskSchema.validate(task.record()); err != nil {
		return fmt.Errorf("task '%v': %w", name, err)
	}

	return s.update(ctx, taskSchema, name, task.record())
}
