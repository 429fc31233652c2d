// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package hierarchy 提供类型层级（subclass-of 有向图）及其传递闭包查询。

# 概述

Hierarchy 以邻接表（类型 → 直接父类型集合）保存 subclass-of 关系，允许
多父类型（DAG），并能容忍畸形输入中的环：每次遍历都持有独立的 visited
集合，保证闭包计算必然终止。祖先/后代闭包按需计算并缓存，构建完成后
只读，可在并发评估之间共享。

# 核心接口与类型

  - Edge      — subclass-of 事实（Child → Parent）
  - Hierarchy — 不可变层级，提供 Ancestors / Descendants / IsAncestor /
    IsDescendant / Relation / Distance 查询
  - Relation  — Exact / Under / Over / Unrelated 四种关系
  - Builder   — Fluent API 构建层级（自环丢弃、重复边合并、环检测与日志）

# 主要能力

  - YAML（subclass_of 映射或 edges 列表）与 TSV（child<TAB>parent）加载
  - WithPrecompute 在构建时预计算全部闭包
*/
package hierarchy
