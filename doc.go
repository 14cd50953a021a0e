// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-tracker is a small work tracker that keeps its projects, tasks and users in Google Sheets.

The spreadsheets are accessed through a sheet-backed data store (package store) that memoizes the Google client,
throttles every remote call, caches reads for a short window and reconciles the canonical record fields with whatever
header layout the worksheets actually have.

uhppoted-app-tracker supports the following commands:

  - get-tasks, to download the tasks worksheet as a TSV file
  - put-tasks, to append the tasks in a TSV file to the tasks worksheet in a single call
  - save-task, to create a task or overwrite the task with the same name
  - update-task, to update an existing task
  - get-projects, put-projects, save-project and update-project, the equivalents for projects
  - users, to list the users in the credentials worksheet
  - status, to display the cache state and the latest revision of each worksheet
  - serve, to expose the data store as a JSON API for the dashboard
*/
package tracker
