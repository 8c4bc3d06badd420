package repository

import "github.com/SeakMengs/ConfPortal/internal/util"

func offset(page, pageSize uint) int {
	return util.PageOffset(page, pageSize)
}

func limit(pageSize uint) int {
	_, pageSize = util.NormalizePage(1, pageSize)
	return int(pageSize)
}
