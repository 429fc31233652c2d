// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的匹配评估指标采集能力。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
注册机制（默认 registry 或调用方提供的 Registerer）。所有指标按
namespace 隔离，按 strategy / side / kind 维度分组。

# 核心类型

  - Collector：指标收集器，持有 Counter、Histogram 向量指标。

# 主要能力

  - 调用指标：匹配调用总数（按 status）与耗时 Histogram。
  - 对齐指标：对齐实体对数量、未对齐实体数量（gold / annotator）。
  - 计数指标：matched / false_positive / false_negative 累计值。
*/
package metrics
