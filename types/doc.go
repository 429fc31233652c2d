// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 hiermatch 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 hierarchy、kb、matching
等上层模块提供统一的类型契约。

# 核心接口与类型

  - TypeID            — 类型标识（字符串，按字面相等）
  - Span              — 半开字符区间 [Start, End)，含偏移校验与重叠判断
  - TypedEntity       — 带区间与类型集合的实体提及
  - MatchTriple       — 单个对齐实体对的 (matched, fp, fn) 计数
  - Error / ErrorCode — 结构化错误体系（INVALID_SPAN、HIERARCHY_LOAD 等）
*/
package types
