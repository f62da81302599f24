package project

import (
	"encoding/json"

	"gypsumplanner/internal/model"
)

// encodeProjects 序列化完整项目列表（紧凑 JSON）
func encodeProjects(projects []model.Project) ([]byte, error) {
	if projects == nil {
		projects = []model.Project{}
	}
	return json.Marshal(projects)
}

// decodeProjects 反序列化项目列表；空 blob 视为无数据
func decodeProjects(data []byte) ([]model.Project, error) {
	if len(data) == 0 {
		return []model.Project{}, nil
	}
	var projects []model.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}
