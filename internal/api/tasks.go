// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const doctypeTask = "Task"

var taskFields = []string{
	"name", "subject", "project", "status", "priority", "exp_end_date", "description",
}

// ListTasks returns tasks, optionally filtered by project.
func (c *Client) ListTasks(ctx context.Context, project string) ([]Task, error) {
	var filters [][3]string
	if project != "" {
		filters = append(filters, [3]string{"project", "=", project})
	}
	var tasks []Task
	if err := c.listDocs(ctx, doctypeTask, taskFields, filters, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask inserts a new task and returns the created record.
func (c *Client) CreateTask(ctx context.Context, task Task) (*Task, error) {
	var created Task
	if err := c.createDoc(ctx, doctypeTask, task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies changes to an existing task.
func (c *Client) UpdateTask(ctx context.Context, name string, task Task) (*Task, error) {
	var updated Task
	if err := c.updateDoc(ctx, doctypeTask, name, task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
