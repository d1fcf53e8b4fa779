package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/repository"
)

const (
	headerAgentID = "编号"
	headerSkills  = "技能"
)

// ReadAgentsCSV 读取人员名单，文件中的行顺序就是人员在排班表中的顺序
// 技能列中的多个技能用顿号或逗号分隔，可以为空
func ReadAgentsCSV(r io.Reader) ([]domain.Agent, error) {
	reader := csv.NewReader(r)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	idCol := slices.Index(headers, headerAgentID)
	skillCol := slices.Index(headers, headerSkills)
	if idCol < 0 || skillCol < 0 {
		return nil, fmt.Errorf("没有找到 %s 列或 %s 列", headerAgentID, headerSkills)
	}

	agents := make([]domain.Agent, 0)
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		agentID := strings.TrimSpace(row[idCol])
		if agentID == "" {
			slog.Warn("跳过没有编号的行", "row", row)
			continue
		}

		skills := make([]string, 0)
		for _, skill := range strings.FieldsFunc(row[skillCol], func(r rune) bool {
			return r == '、' || r == ','
		}) {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}

		agents = append(agents, domain.Agent{ID: agentID, Skills: skills})
	}

	return agents, nil
}

// SeedCatalog 校验目录后用它替换数据库中的目录
func SeedCatalog(r *repository.Repository, agents []domain.Agent, shifts []domain.Shift, appointmentTypes []string) error {
	if _, err := catalog.New(agents, shifts, appointmentTypes); err != nil {
		return err
	}

	return r.ReplaceCatalog(agents, shifts, appointmentTypes)
}

// SeedDefaultCatalog 把内置的目录写入数据库
func SeedDefaultCatalog(r *repository.Repository) {
	if err := SeedCatalog(r, catalog.DefaultAgents, catalog.DefaultShifts, catalog.DefaultAppointmentTypes); err != nil {
		slog.Error("插入内置目录失败", "error", err)
		return
	}

	slog.Info("插入内置目录完成", "agents", len(catalog.DefaultAgents))
}

// SeedAgentsFromCSV 用 CSV 中的人员名单替换数据库中的人员，班次和预约类型沿用内置目录
func SeedAgentsFromCSV(r *repository.Repository, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	agents, err := ReadAgentsCSV(file)
	if err != nil {
		slog.Error("读取人员名单失败", "error", err)
		return
	}

	if err := SeedCatalog(r, agents, catalog.DefaultShifts, catalog.DefaultAppointmentTypes); err != nil {
		slog.Error("插入人员名单失败", "error", err)
		return
	}

	slog.Info("插入人员名单完成", "agents", len(agents))
}
