package planner

// AllocateTime 按距考试天数返回学习/复习/刷题的时间分配比例。
// 越临近考试越偏向刷题和复习。
func AllocateTime(daysToExam int) TimeAllocation {
	for _, b := range allocationBuckets {
		if daysToExam > b.minDays {
			return b.alloc
		}
	}
	return allocationBuckets[len(allocationBuckets)-1].alloc
}
