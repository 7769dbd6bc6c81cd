package repository

import "gorm.io/gorm"

// maxPageSize 列表查询单页上限，超出按上限截断
const maxPageSize = 100

// applyPagination 应用分页参数。pageSize<=0 表示不分页，非法页码回退到第一页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
