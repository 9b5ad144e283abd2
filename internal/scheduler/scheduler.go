package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-projects/internal/pkg/config"
	"student-projects/internal/pkg/logger"
	"student-projects/internal/repository"
	"student-projects/internal/service"
	"student-projects/pkg/constants"
)

// Scheduler 调度器, 负责任务到期提醒
type Scheduler struct {
	cron     *cron.Cron
	taskRepo repository.TaskRepository
	notifier service.NotificationService
	entries  map[string]cron.EntryID
}

// NewScheduler 创建调度器
func NewScheduler(db *gorm.DB) *Scheduler {
	taskRepo := repository.NewTaskRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		taskRepo: taskRepo,
		notifier: service.NewNotificationService(notificationRepo, memberRepo),
		entries:  make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.SchedulerConfig) error {
	logger.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.ReminderCron
	if cronExpr == "" {
		cronExpr = "0 0 8 * * *" // 默认: 每天早上8点
		logger.Warn("未配置scheduler.reminder_cron, 使用默认值", zap.String("cron", cronExpr))
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		logger.Info("执行定时任务: 任务到期提醒")
		if err := s.RemindDueTasks(); err != nil {
			logger.Error("任务到期提醒执行失败", zap.Error(err))
		}
	})
	if err != nil {
		logger.Error("注册任务到期提醒失败", zap.String("cron", cronExpr), zap.Error(err))
		return err
	}

	s.entries["due_reminder"] = entryID
	logger.Info("任务到期提醒已注册", zap.String("cron", cronExpr), zap.Int("entry_id", int(entryID)))

	s.cron.Start()
	logger.Info("定时任务调度器启动成功")
	return nil
}

// Stop 停止调度器, 等待正在执行的任务完成
func (s *Scheduler) Stop() {
	logger.Info("正在停止定时任务调度器...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("定时任务调度器已停止")
}

// RemindDueTasks 给24小时内到期且未完成的任务的负责人发提醒
func (s *Scheduler) RemindDueTasks() error {
	now := time.Now().Truncate(24 * time.Hour)
	tasks, err := s.taskRepo.ListDueSoon(now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if task.AssignedTo == nil {
			continue
		}
		due := ""
		if task.DueDate != nil {
			due = time.Time(*task.DueDate).Format("2006-01-02")
		}
		message := fmt.Sprintf("任务 %s 将于 %s 到期, 请及时处理", task.Title, due)
		if task.Project != nil {
			message = fmt.Sprintf("项目 %s 中的任务 %s 将于 %s 到期, 请及时处理", task.Project.Title, task.Title, due)
		}
		if err := s.notifier.Notify(*task.AssignedTo, task.ProjectID, "任务即将到期", message, constants.NotifySeverityWarning); err != nil {
			logger.Error("发送到期提醒失败", zap.Int64("task_id", task.ID), zap.Error(err))
		}
	}

	logger.Info("任务到期提醒完成", zap.Int("count", len(tasks)))
	return nil
}
