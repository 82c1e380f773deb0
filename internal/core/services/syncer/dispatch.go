package syncer

import (
	"context"
	"sync"

	"gitlab.com/railsync.net/internal/domain"
)

type uploadTask struct {
	caseID   domain.CaseID
	resultID int
}

// uploadTasks pairs each failed result with the run test it was recorded
// against (RemoteRunTest.ID == RemoteResult.TestID). Results whose test is
// not in the run are logged and dropped.
func (s *Synchronizer) uploadTasks(failed []domain.RemoteResult, tests []domain.RemoteRunTest) []uploadTask {
	byID := make(map[int]domain.RemoteRunTest, len(tests))
	for _, test := range tests {
		byID[test.ID] = test
	}

	tasks := make([]uploadTask, 0, len(failed))
	for _, result := range failed {
		test, ok := byID[result.TestID]
		if !ok {
			s.logger.Warn("No run test for failed result", "resultId", result.ID, "testId", result.TestID)
			continue
		}
		tasks = append(tasks, uploadTask{caseID: test.CaseID, resultID: result.ID})
	}
	return tasks
}

// dispatch runs the uploads on a bounded pool. Uploads are independent, so
// the order of the returned summaries is not defined.
func (s *Synchronizer) dispatch(ctx context.Context, failed []domain.RemoteResult, tests []domain.RemoteRunTest) []domain.UploadSummary {
	tasks := s.uploadTasks(failed, tests)
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan uploadTask, len(tasks))
	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	workerSize := s.workers
	if workerSize > len(tasks) {
		workerSize = len(tasks)
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		summaries = make([]domain.UploadSummary, 0, len(tasks))
	)
	wg.Add(workerSize)
	for i := 0; i < workerSize; i++ {
		go func() {
			defer wg.Done()
			for task := range taskCh {
				summary := s.upload(ctx, task)
				mu.Lock()
				summaries = append(summaries, summary)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return summaries
}

func (s *Synchronizer) upload(ctx context.Context, task uploadTask) (summary domain.UploadSummary) {
	summary = domain.UploadSummary{CaseID: task.caseID, ResultID: task.resultID}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic while uploading screenshots", "caseId", task.caseID, "panic", r)
		}
	}()
	return s.uploader.UploadScreenshots(ctx, task.caseID, task.resultID)
}
