// Package store loads, validates, mutates, and saves the task file.
//
// The task file is a single JSON array:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Buy milk",
//	    "status": "todo",
//	    "createdAt": "2025-01-02T10:00:00Z",
//	    "updatedAt": "2025-01-02T10:00:00Z"
//	  }
//	]
//
// # Loading
//
// A missing or empty file is an empty collection. Anything else must parse
// as JSON, pass the embedded JSON Schema (draft 2020-12), and carry unique
// ids. Failures are reported as *ParseError and match ErrParse.
//
// # Ids
//
// Ids are positive integers assigned in order. The next id is the highest
// id on disk plus one and only grows while a Store is open. Deleting a
// task never renumbers the others. No counter is stored in the file, so
// deleting the highest task lets a later Load hand its id out again.
// Add fails with ErrValidation once ids are exhausted.
//
// # Task Status Values
//
//   - "todo": not started
//   - "in-progress": being worked on
//   - "done": finished
//
// # Saving
//
// The whole collection is written to a temp file in the target directory,
// synced, and renamed over the original. A failed save leaves the previous
// file untouched. Output uses 2-space indentation and a trailing newline.
package store
