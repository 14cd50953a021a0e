package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

// getTasks returns the tasks, optionally filtered by ?assigned_to=<email> and/or ?today=true
// (tasks starting today).
func (s *Server) getTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := workflow.Filter{
		AssignedTo: query.Get("assigned_to"),
	}

	if v := query.Get("today"); v != "" {
		today, err := strconv.ParseBool(v)
		if err != nil {
			fail(w, r, fmt.Errorf("%w: invalid 'today' parameter '%v'", ErrInvalidRequest, v))
			return
		}

		if today {
			filter.StartDate = s.today()
		}
	}

	tasks, err := s.store.LoadTasks(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response := []task{}
	for _, t := range workflow.Select(tasks, filter) {
		response = append(response, fromTask(t))
	}

	reply(w, http.StatusOK, response)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.LoadTasks(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	v := workflow.Summarise(tasks, s.today())

	reply(w, http.StatusOK, summary{
		Total:      v.Total,
		Completed:  v.Completed,
		Incomplete: v.Incomplete,
		Overdue:    v.Overdue,
	})
}

func (s *Server) saveTask(w http.ResponseWriter, r *http.Request) {
	var body task
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	t, err := body.toTask()
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.authorised(r.Context(), t.CreatedBy); err != nil {
		fail(w, r, err)
		return
	}

	t = workflow.StampTask(t, s.today())

	if err := s.store.SaveTask(r.Context(), t); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, fromTask(t))
}

func (s *Server) saveTasks(w http.ResponseWriter, r *http.Request) {
	var body []task
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	tasks := []store.Task{}
	for _, v := range body {
		t, err := v.toTask()
		if err != nil {
			fail(w, r, err)
			return
		}

		if err := s.authorised(r.Context(), t.CreatedBy); err != nil {
			fail(w, r, err)
			return
		}

		tasks = append(tasks, workflow.StampTask(t, s.today()))
	}

	if err := s.store.SaveTasks(r.Context(), tasks); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, map[string]int{"saved": len(tasks)})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var body task
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	if body.Name == "" {
		body.Name = name
	}

	t, err := body.toTask()
	if err != nil {
		fail(w, r, err)
		return
	}

	t = workflow.StampTask(t, s.today())

	if err := s.store.UpdateTask(r.Context(), name, t); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, fromTask(t))
}

func (s *Server) getProjects(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.LoadProjects(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, names)
}

func (s *Server) getProjectTable(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.LoadProjectTable(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response := []project{}
	for _, p := range projects {
		response = append(response, fromProject(p))
	}

	reply(w, http.StatusOK, response)
}

func (s *Server) saveProject(w http.ResponseWriter, r *http.Request) {
	var body project
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	p, err := body.toProject()
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.authorised(r.Context(), p.CreatedBy); err != nil {
		fail(w, r, err)
		return
	}

	if err := s.completable(r.Context(), p.Name, p.Status); err != nil {
		fail(w, r, err)
		return
	}

	p = workflow.StampProject(p, s.today())

	if err := s.store.SaveProject(r.Context(), p); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, fromProject(p))
}

func (s *Server) saveProjects(w http.ResponseWriter, r *http.Request) {
	var body []project
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	projects := []store.Project{}
	for _, v := range body {
		p, err := v.toProject()
		if err != nil {
			fail(w, r, err)
			return
		}

		if err := s.authorised(r.Context(), p.CreatedBy); err != nil {
			fail(w, r, err)
			return
		}

		if err := s.completable(r.Context(), p.Name, p.Status); err != nil {
			fail(w, r, err)
			return
		}

		projects = append(projects, workflow.StampProject(p, s.today()))
	}

	if err := s.store.SaveProjects(r.Context(), projects); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, map[string]int{"saved": len(projects)})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var body project
	if err := decode(r, &body); err != nil {
		fail(w, r, err)
		return
	}

	if body.Name == "" {
		body.Name = name
	}

	p, err := body.toProject()
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.completable(r.Context(), name, p.Status); err != nil {
		fail(w, r, err)
		return
	}

	p = workflow.StampProject(p, s.today())

	if err := s.store.UpdateProject(r.Context(), name, p); err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, fromProject(p))
}

func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.LoadUsers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response := []user{}
	for _, u := range users {
		response = append(response, user{Email: u.Email, Name: u.Name})
	}

	reply(w, http.StatusOK, response)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ok, err := s.store.CheckUser(r.Context(), email)
	if err != nil {
		fail(w, r, err)
		return
	}

	name, err := s.store.UserName(r.Context(), email)
	if err != nil {
		fail(w, r, err)
		return
	}

	reply(w, http.StatusOK, user{
		Email:      email,
		Name:       name,
		Authorised: &ok,
	})
}

func (s *Server) authorised(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	if ok, err := s.store.CheckUser(ctx, email); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w '%v'", ErrUnauthorised, email)
	}

	return nil
}

// completable checks that a project has no open tasks if it is being marked as completed.
func (s *Server) completable(ctx context.Context, name string, status string) error {
	if status != store.StatusCompleted {
		return nil
	}

	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return err
	}

	return workflow.CanComplete(name, tasks)
}
