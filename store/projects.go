package store

import (
	"context"
	"fmt"
)

// LoadProjects returns the names of all the projects in the projects worksheet.
func (s *Store) LoadProjects(ctx context.Context) ([]string, error) {
	return cached(s, KeyProjectsList, func() ([]string, error) {
		projects, err := s.LoadProjectTable(ctx)
		if err != nil {
			return nil, err
		}

		names := []string{}
		for _, p := range projects {
			if p.Name != "" {
				names = append(names, p.Name)
			}
		}

		return names, nil
	})
}

// LoadProjectTable returns the full records for all the projects in the projects worksheet.
func (s *Store) LoadProjectTable(ctx context.Context) ([]Project, error) {
	return cached(s, KeyProjectsDF, func() ([]Project, error) {
		records, err := s.load(ctx, projectSchema)
		if err != nil {
			return nil, err
		}

		projects := make([]Project, 0, len(records))
		for _, r := range records {
			projects = append(projects, projectFromRecord(r))
		}

		return projects, nil
	})
}

// SaveProject adds a project to the projects worksheet, replacing the existing row if there is
// already a project with the same name.
func (s *Store) SaveProject(ctx context.Context, project Project) error {
	return s.save(ctx, projectSchema, project.record())
}

// SaveProjects appends a batch of projects to the projects worksheet in a single API call.
func (s *Store) SaveProjects(ctx context.Context, projects []Project) error {
	records := make([]record, 0, len(projects))
	for _, p := range projects {
		records = append(records, p.record())
	}

	return s.saveAll(ctx, projectSchema, records)
}

func (s *Store) UpdateProject(ctx context.Context, name string, project Project) error {
	if err := projectSchema.validate(project.record()); err != nil {
		return fmt.Errorf("project '%v': %w", name, err)
	}

	return s.update(ctx, projectSchema, name, project.record())
}
