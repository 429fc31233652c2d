// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package matching 实现层级感知的实体类型匹配计数。

# 概述

一次评估调用接收标注器输出与金标准两组带类型的实体：先由 SpanMatcher
按字符偏移对齐实体，再由 TypeSetMatcher 比较每对实体的类型集合，产出
(matched, false positive, false negative) 三元组，并按调用顺序追加到
Accumulator。

# 核心接口与类型

  - SpanMatcher                  — 实体对齐（ExactSpanMatcher / WeakSpanMatcher）
  - TypeSetMatcher               — 类型集合比较，支持 subsumption 与 greedy 两种策略
  - HierarchicalMatchingsCounter — 对齐 + 比较 + 累积，可选指标与日志
  - Accumulator                  — 只追加的调用记录，支持合并
  - RunParallel                  — 按文档分块并发评估，结果保持文档顺序

# 计数规则

subsumption 策略将两侧已知知识库类型展开为其后代闭包（未知类型保持原子），
matched = |G∩A|，fp = |A\G|，fn = |G\A|。greedy 策略先精确匹配，再为剩余
金标准类型选择层级距离最近的过/欠特化候选。
*/
package matching
